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

	"github.com/xuri/excelize/v2"

	contactmodel "github.com/crmstack/contact-data-service/internal/contact/model"
	templatemodel "github.com/crmstack/contact-data-service/internal/template/model"
)

const sheetName = "Kontakte"

// WriteXLSX renders a single-sheet workbook with a bold header row and one
// row per contact.
func WriteXLSX(template *templatemodel.Template, contacts []contactmodel.Contact) ([]byte, error) {

	properties := template.FlattenedProperties()

	workbook := excelize.NewFile()
	defer func() { _ = workbook.Close() }()

	if err := workbook.SetSheetName(workbook.GetSheetName(0), sheetName); err != nil {
		return nil, writeError("xlsx", err)
	}

	headers := make([]interface{}, len(properties))
	for i, property := range properties {
		headers[i] = property.Name
	}
	if err := workbook.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return nil, writeError("xlsx", err)
	}

	boldStyle, err := workbook.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, writeError("xlsx", err)
	}
	lastHeaderCell, err := excelize.CoordinatesToCellName(max(len(properties), 1), 1)
	if err != nil {
		return nil, writeError("xlsx", err)
	}
	if err := workbook.SetCellStyle(sheetName, "A1", lastHeaderCell, boldStyle); err != nil {
		return nil, writeError("xlsx", err)
	}

	for rowIdx, contact := range contacts {
		row := make([]interface{}, len(properties))
		for i, property := range properties {
			row[i] = contact.Attributes[property.Name]
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return nil, writeError("xlsx", err)
		}
		if err := workbook.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, writeError("xlsx", err)
		}
	}

	var buf bytes.Buffer
	if err := workbook.Write(&buf); err != nil {
		return nil, writeError("xlsx", err)
	}
	return buf.Bytes(), nil
}
