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

	"github.com/crmstack/contact-data-service/internal/template/handler"
)

// TemplateService registers the template API endpoints.
type TemplateService struct {
	handler *handler.TemplateHandler
}

// NewTemplateService creates a template service and mounts its routes.
func NewTemplateService(mux *http.ServeMux, basePath string) *TemplateService {

	s := &TemplateService{
		handler: handler.NewTemplateHandler(),
	}
	mux.HandleFunc("POST "+basePath+"/templates", s.handler.HandleTemplatePostRequest)
	mux.HandleFunc("GET "+basePath+"/templates", s.handler.HandleTemplateListRequest)
	mux.HandleFunc("GET "+basePath+"/templates/{id}", s.handler.HandleTemplateGetRequest)
	mux.HandleFunc("GET "+basePath+"/templates/{id}/properties", s.handler.HandleTemplatePropertiesRequest)
	mux.HandleFunc("PUT "+basePath+"/templates/{id}", s.handler.HandleTemplatePutRequest)
	mux.HandleFunc("DELETE "+basePath+"/templates/{id}", s.handler.HandleTemplateDeleteRequest)
	return s
}
