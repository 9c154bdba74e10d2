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

package parser

import (
	"bytes"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/crmstack/contact-data-service/internal/importer/model"
)

// XLSXParser reads the first sheet of a workbook. The first row is the
// header row; fully empty rows are skipped.
type XLSXParser struct{}

func (p *XLSXParser) Parse(file model.NamedFile) ([]map[string]string, error) {

	workbook, err := excelize.OpenReader(bytes.NewReader(file.Content))
	if err != nil {
		return nil, parseError(file.Name, err)
	}
	defer func() { _ = workbook.Close() }()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return []map[string]string{}, nil
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, parseError(file.Name, err)
	}
	if len(rows) == 0 {
		return []map[string]string{}, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := map[string]string{}
		empty := true
		for i, value := range row {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			value = strings.TrimSpace(value)
			if value != "" {
				empty = false
			}
			record[headers[i]] = value
		}
		if !empty {
			records = append(records, record)
		}
	}
	return records, nil
}
