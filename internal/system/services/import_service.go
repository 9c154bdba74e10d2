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

	"github.com/crmstack/contact-data-service/internal/importer/handler"
)

// ImportService registers the import API endpoints.
type ImportService struct {
	handler *handler.ImportHandler
}

// NewImportService creates an import service and mounts its routes.
func NewImportService(mux *http.ServeMux, basePath string) *ImportService {

	s := &ImportService{
		handler: handler.NewImportHandler(),
	}
	mux.HandleFunc("POST "+basePath+"/import/upload", s.handler.HandleUploadRequest)
	mux.HandleFunc("POST "+basePath+"/import/finalize", s.handler.HandleFinalizeRequest)
	mux.HandleFunc("POST "+basePath+"/templates/{id}/import/mail-items", s.handler.HandleMailItemImportRequest)
	return s
}
