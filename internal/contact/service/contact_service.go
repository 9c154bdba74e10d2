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
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/crmstack/contact-data-service/internal/contact/model"
	"github.com/crmstack/contact-data-service/internal/contact/store"
	errors2 "github.com/crmstack/contact-data-service/internal/system/errors"
	templatestore "github.com/crmstack/contact-data-service/internal/template/store"
)

// ContactServiceInterface defines the business operations on contact records.
type ContactServiceInterface interface {
	CreateContact(templateId string, attributes map[string]string) (*model.Contact, error)
	GetContact(contactId string) (*model.Contact, error)
	ListByTemplate(templateId string) ([]model.Contact, error)
	UpdateContact(contactId string, attributes map[string]string) (*model.Contact, error)
	UpdateAttribute(contactId string, update *model.AttributeUpdate) (*model.Contact, error)
	DeleteContact(contactId string) error
	BulkDelete(contactIds []string) error
}

// ContactService is the default implementation of ContactServiceInterface.
type ContactService struct {
	store         store.ContactStoreInterface
	templateStore templatestore.TemplateStoreInterface
}

// GetContactService returns a contact service backed by the postgres stores.
func GetContactService() ContactServiceInterface {

	return &ContactService{
		store:         &store.ContactStore{},
		templateStore: &templatestore.TemplateStore{},
	}
}

// CreateContact stores a new contact under an existing template. Attribute
// values are taken as-is; the template structure only drives rendering.
func (cs *ContactService) CreateContact(templateId string, attributes map[string]string) (*model.Contact, error) {

	template, err := cs.templateStore.GetTemplate(templateId)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, errors2.NewClientError(errors2.TEMPLATE_NOT_FOUND, http.StatusNotFound)
	}

	if attributes == nil {
		attributes = map[string]string{}
	}
	contact := &model.Contact{
		ContactId:  uuid.New().String(),
		TemplateId: templateId,
		Attributes: attributes,
	}
	if err := cs.store.InsertContact(contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// GetContact returns a single contact record.
func (cs *ContactService) GetContact(contactId string) (*model.Contact, error) {

	contact, err := cs.store.GetContact(contactId)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, errors2.NewClientError(errors2.CONTACT_NOT_FOUND, http.StatusNotFound)
	}
	return contact, nil
}

// ListByTemplate returns all contacts of an existing template.
func (cs *ContactService) ListByTemplate(templateId string) ([]model.Contact, error) {

	template, err := cs.templateStore.GetTemplate(templateId)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, errors2.NewClientError(errors2.TEMPLATE_NOT_FOUND, http.StatusNotFound)
	}
	return cs.store.ListByTemplate(templateId)
}

// UpdateContact replaces the full attribute map of an existing contact.
func (cs *ContactService) UpdateContact(contactId string, attributes map[string]string) (*model.Contact, error) {

	contact, err := cs.store.GetContact(contactId)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, errors2.NewClientError(errors2.CONTACT_NOT_FOUND, http.StatusNotFound)
	}

	if attributes == nil {
		attributes = map[string]string{}
	}
	if err := cs.store.UpdateAttributes(contactId, attributes); err != nil {
		return nil, err
	}
	contact.Attributes = attributes
	return contact, nil
}

// UpdateAttribute writes a single attribute of an existing contact, leaving
// the remaining attributes untouched.
func (cs *ContactService) UpdateAttribute(contactId string, update *model.AttributeUpdate) (*model.Contact, error) {

	if update == nil || strings.TrimSpace(update.Name) == "" {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: "Attribute name must not be empty.",
		}, http.StatusBadRequest)
	}

	contact, err := cs.store.GetContact(contactId)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, errors2.NewClientError(errors2.CONTACT_NOT_FOUND, http.StatusNotFound)
	}

	if err := cs.store.UpsertAttribute(contactId, update.Name, update.Value); err != nil {
		return nil, err
	}
	contact.Attributes[update.Name] = update.Value
	return contact, nil
}

// DeleteContact removes a single contact record.
func (cs *ContactService) DeleteContact(contactId string) error {

	contact, err := cs.store.GetContact(contactId)
	if err != nil {
		return err
	}
	if contact == nil {
		return errors2.NewClientError(errors2.CONTACT_NOT_FOUND, http.StatusNotFound)
	}
	return cs.store.DeleteContact(contactId)
}

// BulkDelete removes all given contacts. Unknown ids are ignored.
func (cs *ContactService) BulkDelete(contactIds []string) error {

	if len(contactIds) == 0 {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: "Contact id list must not be empty.",
		}, http.StatusBadRequest)
	}
	return cs.store.BulkDelete(contactIds)
}
