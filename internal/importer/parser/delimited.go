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
	"encoding/csv"
	"strings"

	"github.com/crmstack/contact-data-service/internal/importer/model"
)

// DelimitedParser reads comma- or tab-separated text. The first row is the
// header row; rows shorter than the header simply omit the trailing keys.
type DelimitedParser struct {
	Delimiter rune
}

func (p *DelimitedParser) Parse(file model.NamedFile) ([]map[string]string, error) {

	reader := csv.NewReader(bytes.NewReader(file.Content))
	reader.Comma = p.Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
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
		for i, value := range row {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			record[headers[i]] = strings.TrimSpace(value)
		}
		if len(record) > 0 {
			records = append(records, record)
		}
	}
	return records, nil
}
