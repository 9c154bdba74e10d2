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

package service

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	contactmodel "github.com/crmstack/contact-data-service/internal/contact/model"
	contactstore "github.com/crmstack/contact-data-service/internal/contact/store"
	"github.com/crmstack/contact-data-service/internal/exporter/model"
	"github.com/crmstack/contact-data-service/internal/exporter/writer"
	"github.com/crmstack/contact-data-service/internal/system/constants"
	errors2 "github.com/crmstack/contact-data-service/internal/system/errors"
	templatemodel "github.com/crmstack/contact-data-service/internal/template/model"
	templatestore "github.com/crmstack/contact-data-service/internal/template/store"
)

// ExportServiceInterface renders all contacts of a template into a
// downloadable document.
type ExportServiceInterface interface {
	Export(templateId, format string) (*model.ExportResult, error)
}

// ExportService is the default implementation of ExportServiceInterface.
type ExportService struct {
	store         contactstore.ContactStoreInterface
	templateStore templatestore.TemplateStoreInterface
}

// GetExportService returns an export service backed by the postgres stores.
func GetExportService() ExportServiceInterface {

	return &ExportService{
		store:         &contactstore.ContactStore{},
		templateStore: &templatestore.TemplateStore{},
	}
}

// Export renders the template's contacts in the requested format. The format
// token is matched case-insensitively.
func (es *ExportService) Export(templateId, format string) (*model.ExportResult, error) {

	format = strings.ToLower(strings.TrimSpace(format))
	if _, ok := constants.ExportMimeTypes[format]; !ok {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.UNKNOWN_EXPORT_FORMAT.Code,
			Message:     errors2.UNKNOWN_EXPORT_FORMAT.Message,
			Description: fmt.Sprintf("Format '%s' is not one of csv, xlsx, pdf.", format),
		}, http.StatusBadRequest)
	}

	template, err := es.templateStore.GetTemplate(templateId)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, errors2.NewClientError(errors2.TEMPLATE_NOT_FOUND, http.StatusNotFound)
	}

	contacts, err := es.store.ListByTemplate(templateId)
	if err != nil {
		return nil, err
	}

	content, err := render(format, template, contacts)
	if err != nil {
		return nil, err
	}

	return &model.ExportResult{
		Content:  content,
		MimeType: constants.ExportMimeTypes[format],
		Filename: fmt.Sprintf("%s_export_%s.%s", template.Name, time.Now().Format("2006-01-02"), format),
	}, nil
}

func render(format string, template *templatemodel.Template, contacts []contactmodel.Contact) ([]byte, error) {

	switch format {
	case constants.FormatCSV:
		return writer.WriteCSV(template, contacts)
	case constants.FormatXLSX:
		return writer.WriteXLSX(template, contacts)
	default:
		return writer.WritePDF(template, contacts)
	}
}
