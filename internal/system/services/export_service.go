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

package services

import (
	"net/http"

	"github.com/crmstack/contact-data-service/internal/exporter/handler"
)

// ExportService registers the export API endpoints.
type ExportService struct {
	handler *handler.ExportHandler
}

// NewExportService creates an export service and mounts its routes.
func NewExportService(mux *http.ServeMux, basePath string) *ExportService {

	s := &ExportService{
		handler: handler.NewExportHandler(),
	}
	mux.HandleFunc("GET "+basePath+"/templates/{id}/export/{format}", s.handler.HandleExportRequest)
	return s
}
