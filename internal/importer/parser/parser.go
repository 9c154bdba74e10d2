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

// Package parser turns uploaded files of the supported formats into flat
// string records keyed by source header or canonical attribute name.
package parser

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/crmstack/contact-data-service/internal/importer/model"
	"github.com/crmstack/contact-data-service/internal/system/constants"
	errors2 "github.com/crmstack/contact-data-service/internal/system/errors"
)

// Parser converts one uploaded file into zero or more flat records.
type Parser interface {
	Parse(file model.NamedFile) ([]map[string]string, error)
}

// ForFile selects a parser by file extension. The extension allow-list is
// checked before any content is touched.
func ForFile(filename string) (Parser, error) {

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if !constants.AllowedImportExtensions[ext] {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.UNSUPPORTED_FORMAT.Code,
			Message:     errors2.UNSUPPORTED_FORMAT.Message,
			Description: fmt.Sprintf("File '%s' has an unsupported extension.", filename),
		}, http.StatusBadRequest)
	}

	switch ext {
	case "csv":
		return &DelimitedParser{Delimiter: ','}, nil
	case "txt":
		return &DelimitedParser{Delimiter: '\t'}, nil
	case "xlsx":
		return &XLSXParser{}, nil
	case "vcf":
		return &VCardParser{}, nil
	default: // msg, oft
		return NewMailItemParser(), nil
	}
}

// parseError wraps a format-level failure as a client error.
func parseError(filename string, cause error) error {

	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.PARSE_FILE.Code,
		Message:     errors2.PARSE_FILE.Message,
		Description: fmt.Sprintf("File '%s' could not be parsed: %v", filename, cause),
	}, http.StatusBadRequest)
}
