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

// Package writer renders contact sets of one template into downloadable
// documents. Column order always follows the template structure.
package writer

import (
	"bytes"
	"encoding/csv"

	contactmodel "github.com/crmstack/contact-data-service/internal/contact/model"
	errors2 "github.com/crmstack/contact-data-service/internal/system/errors"
	templatemodel "github.com/crmstack/contact-data-service/internal/template/model"
)

// WriteCSV renders one header row of property names followed by one row per
// contact. Attributes the contact does not carry become empty cells.
func WriteCSV(template *templatemodel.Template, contacts []contactmodel.Contact) ([]byte, error) {

	properties := template.FlattenedProperties()
	headers := make([]string, len(properties))
	for i, property := range properties {
		headers[i] = property.Name
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, writeError("csv", err)
	}
	row := make([]string, len(properties))
	for _, contact := range contacts {
		for i, property := range properties {
			row[i] = contact.Attributes[property.Name]
		}
		if err := w.Write(row); err != nil {
			return nil, writeError("csv", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, writeError("csv", err)
	}
	return buf.Bytes(), nil
}

func writeError(format string, cause error) error {

	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.WRITE_EXPORT.Code,
		Message:     errors2.WRITE_EXPORT.Message,
		Description: "Failed to render " + format + " export",
	}, cause)
}
