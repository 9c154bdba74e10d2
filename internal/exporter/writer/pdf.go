/*
 * Copyright (c) 2025-2026, CRMStack (https://github.com/crmstack).
 *
 * CRMStack licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package writer

import (
	"bytes"
	"strings"

	"github.com/go-pdf/fpdf"

	contactmodel "github.com/crmstack/contact-data-service/internal/contact/model"
	"github.com/crmstack/contact-data-service/internal/system/constants"
	templatemodel "github.com/crmstack/contact-data-service/internal/template/model"
)

const labelWidth = 60.0

// WritePDF renders one page per contact: a title line, then one section per
// group that has at least one non-empty value. The built-in fonts only
// cover cp1252, so all text runs through the codepage translator.
func WritePDF(template *templatemodel.Template, contacts []contactmodel.Contact) ([]byte, error) {

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)

	for i := range contacts {
		contact := &contacts[i]
		pdf.AddPage()

		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(0, 10, tr(pdfTitle(contact)), "", 1, "L", false, 0, "")
		x, y := pdf.GetX(), pdf.GetY()
		pdf.Line(x, y, 200, y)
		pdf.Ln(4)

		for _, group := range template.Groups {
			if !groupHasValues(&group, contact) {
				continue
			}
			pdf.SetFont("Arial", "B", 12)
			pdf.CellFormat(0, 8, tr(group.Name), "", 1, "L", false, 0, "")
			for _, property := range group.Properties {
				value := strings.TrimSpace(contact.Attributes[property.Name])
				if value == "" {
					continue
				}
				pdf.SetFont("Arial", "B", 10)
				pdf.CellFormat(labelWidth, 6, tr(property.Name), "", 0, "L", false, 0, "")
				pdf.SetFont("Arial", "", 10)
				pdf.MultiCell(0, 6, tr(value), "", "L", false)
			}
			pdf.Ln(2)
		}
	}
	if len(contacts) == 0 {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(0, 10, tr(template.Name), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, writeError("pdf", err)
	}
	return buf.Bytes(), nil
}

// pdfTitle builds the page heading: salutation, title and name when any of
// them is present, the company name otherwise.
func pdfTitle(contact *contactmodel.Contact) string {

	parts := make([]string, 0, 4)
	for _, field := range []string{
		constants.FieldSalutation, constants.FieldTitle, constants.FieldFirstName, constants.FieldLastName,
	} {
		if value := strings.TrimSpace(contact.Attributes[field]); value != "" {
			parts = append(parts, value)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	if company := strings.TrimSpace(contact.Attributes[constants.FieldCompanyName]); company != "" {
		return company
	}
	return contact.DisplayName()
}

func groupHasValues(group *templatemodel.Group, contact *contactmodel.Contact) bool {

	for _, property := range group.Properties {
		if strings.TrimSpace(contact.Attributes[property.Name]) != "" {
			return true
		}
	}
	return false
}
