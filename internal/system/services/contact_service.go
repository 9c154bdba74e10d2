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

	"github.com/crmstack/contact-data-service/internal/contact/handler"
)

// ContactService registers the contact API endpoints.
type ContactService struct {
	handler *handler.ContactHandler
}

// NewContactService creates a contact service and mounts its routes.
func NewContactService(mux *http.ServeMux, basePath string) *ContactService {

	s := &ContactService{
		handler: handler.NewContactHandler(),
	}
	mux.HandleFunc("POST "+basePath+"/templates/{id}/contacts", s.handler.HandleContactPostRequest)
	mux.HandleFunc("GET "+basePath+"/templates/{id}/contacts", s.handler.HandleContactListRequest)
	mux.HandleFunc("GET "+basePath+"/contacts/{id}", s.handler.HandleContactGetRequest)
	mux.HandleFunc("PUT "+basePath+"/contacts/{id}", s.handler.HandleContactPutRequest)
	mux.HandleFunc("PATCH "+basePath+"/contacts/{id}/attributes", s.handler.HandleContactPatchRequest)
	mux.HandleFunc("DELETE "+basePath+"/contacts/{id}", s.handler.HandleContactDeleteRequest)
	mux.HandleFunc("POST "+basePath+"/contacts/bulk-delete", s.handler.HandleContactBulkDeleteRequest)
	return s
}
