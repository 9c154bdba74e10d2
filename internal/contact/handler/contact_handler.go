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

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/crmstack/contact-data-service/internal/contact/model"
	"github.com/crmstack/contact-data-service/internal/contact/provider"
	errors2 "github.com/crmstack/contact-data-service/internal/system/errors"
	"github.com/crmstack/contact-data-service/internal/system/utils"
)

// ContactHandler handles HTTP requests of the contact API.
type ContactHandler struct{}

// NewContactHandler creates a new instance of ContactHandler.
func NewContactHandler() *ContactHandler {

	return &ContactHandler{}
}

// HandleContactPostRequest creates a contact under the template in the path.
func (ch *ContactHandler) HandleContactPostRequest(w http.ResponseWriter, r *http.Request) {

	var attributes map[string]string
	if err := json.NewDecoder(r.Body).Decode(&attributes); err != nil {
		writeDecodeError(w, err)
		return
	}

	contactService := provider.NewContactProvider().GetContactService()
	contact, err := contactService.CreateContact(r.PathValue("id"), attributes)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, contact)
}

// contactListEntry decorates a contact with its derived display name for
// list views.
type contactListEntry struct {
	model.Contact
	DisplayName string `json:"display_name"`
}

// HandleContactListRequest lists all contacts of the template in the path.
func (ch *ContactHandler) HandleContactListRequest(w http.ResponseWriter, r *http.Request) {

	contactService := provider.NewContactProvider().GetContactService()
	contacts, err := contactService.ListByTemplate(r.PathValue("id"))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	entries := make([]contactListEntry, 0, len(contacts))
	for _, contact := range contacts {
		entries = append(entries, contactListEntry{
			Contact:     contact,
			DisplayName: contact.DisplayName(),
		})
	}
	utils.WriteJSONResponse(w, http.StatusOK, entries)
}

// HandleContactGetRequest returns a single contact by id.
func (ch *ContactHandler) HandleContactGetRequest(w http.ResponseWriter, r *http.Request) {

	contactService := provider.NewContactProvider().GetContactService()
	contact, err := contactService.GetContact(r.PathValue("id"))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, contact)
}

// HandleContactPutRequest replaces the full attribute map of a contact.
func (ch *ContactHandler) HandleContactPutRequest(w http.ResponseWriter, r *http.Request) {

	var attributes map[string]string
	if err := json.NewDecoder(r.Body).Decode(&attributes); err != nil {
		writeDecodeError(w, err)
		return
	}

	contactService := provider.NewContactProvider().GetContactService()
	contact, err := contactService.UpdateContact(r.PathValue("id"), attributes)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, contact)
}

// HandleContactPatchRequest writes a single attribute of a contact.
func (ch *ContactHandler) HandleContactPatchRequest(w http.ResponseWriter, r *http.Request) {

	var update model.AttributeUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeDecodeError(w, err)
		return
	}

	contactService := provider.NewContactProvider().GetContactService()
	contact, err := contactService.UpdateAttribute(r.PathValue("id"), &update)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, contact)
}

// HandleContactDeleteRequest deletes a single contact.
func (ch *ContactHandler) HandleContactDeleteRequest(w http.ResponseWriter, r *http.Request) {

	contactService := provider.NewContactProvider().GetContactService()
	if err := contactService.DeleteContact(r.PathValue("id")); err != nil {
		utils.HandleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleContactBulkDeleteRequest deletes all contacts named in the body.
func (ch *ContactHandler) HandleContactBulkDeleteRequest(w http.ResponseWriter, r *http.Request) {

	var body struct {
		ContactIds []string `json:"contact_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDecodeError(w, err)
		return
	}

	contactService := provider.NewContactProvider().GetContactService()
	if err := contactService.BulkDelete(body.ContactIds); err != nil {
		utils.HandleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeDecodeError(w http.ResponseWriter, err error) {

	utils.HandleError(w, errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.BAD_REQUEST.Code,
		Message:     errors2.BAD_REQUEST.Message,
		Description: utils.HandleDecodeError(err, "contact"),
	}, http.StatusBadRequest))
}
