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

package store

import (
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/crmstack/contact-data-service/internal/contact/model"
	"github.com/crmstack/contact-data-service/internal/system/constants"
	"github.com/crmstack/contact-data-service/internal/system/database/client"
	"github.com/crmstack/contact-data-service/internal/system/database/provider"
	errors2 "github.com/crmstack/contact-data-service/internal/system/errors"
	"github.com/crmstack/contact-data-service/internal/system/log"
)

// ContactStoreInterface defines the persistence operations for contacts.
type ContactStoreInterface interface {
	InsertContact(contact *model.Contact) error
	GetContact(contactId string) (*model.Contact, error)
	ListByTemplate(templateId string) ([]model.Contact, error)
	UpdateAttributes(contactId string, attributes map[string]string) error
	UpsertAttribute(contactId, name, value string) error
	DeleteContact(contactId string) error
	BulkDelete(contactIds []string) error
	FindByEmail(templateId, email string) (*model.Contact, error)
	FindByName(templateId, firstName, lastName string) (*model.Contact, error)
	SaveImportBatch(creates []model.Contact, updates []model.Contact) error
}

// ContactStore is the postgres-backed implementation of ContactStoreInterface.
type ContactStore struct{}

// InsertContact stores a single contact record.
func (s *ContactStore) InsertContact(contact *model.Contact) error {

	dbClient, err := getClient("adding contact")
	if err != nil {
		return err
	}
	defer dbClient.Close()

	attributes, err := marshalAttributes(contact.Attributes)
	if err != nil {
		return err
	}

	query := `INSERT INTO contacts (contact_id, template_id, attributes) VALUES ($1, $2, $3)`
	if _, err := dbClient.ExecuteQuery(query, contact.ContactId, contact.TemplateId, attributes); err != nil {
		return queryError(errors2.ADD_CONTACT, fmt.Sprintf("Failed to insert contact: %s", contact.ContactId), err)
	}
	return nil
}

// GetContact retrieves a single contact. Returns nil when no record exists.
func (s *ContactStore) GetContact(contactId string) (*model.Contact, error) {

	dbClient, err := getClient("fetching contact")
	if err != nil {
		return nil, err
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(
		`SELECT contact_id, template_id, attributes FROM contacts WHERE contact_id = $1`, contactId)
	if err != nil {
		return nil, queryError(errors2.GET_CONTACT, fmt.Sprintf("Failed to fetch contact: %s", contactId), err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return mapRowToContact(results[0])
}

// ListByTemplate returns all contacts of a template.
func (s *ContactStore) ListByTemplate(templateId string) ([]model.Contact, error) {

	dbClient, err := getClient("listing contacts")
	if err != nil {
		return nil, err
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(
		`SELECT contact_id, template_id, attributes FROM contacts WHERE template_id = $1 ORDER BY contact_id`,
		templateId)
	if err != nil {
		return nil, queryError(errors2.GET_CONTACT,
			fmt.Sprintf("Failed to list contacts of template: %s", templateId), err)
	}

	contacts := make([]model.Contact, 0, len(results))
	for _, row := range results {
		contact, err := mapRowToContact(row)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *contact)
	}
	return contacts, nil
}

// UpdateAttributes replaces the full attribute map of a contact.
func (s *ContactStore) UpdateAttributes(contactId string, attributes map[string]string) error {

	dbClient, err := getClient("updating contact")
	if err != nil {
		return err
	}
	defer dbClient.Close()

	payload, err := marshalAttributes(attributes)
	if err != nil {
		return err
	}

	query := `UPDATE contacts SET attributes = $2 WHERE contact_id = $1`
	if _, err := dbClient.ExecuteQuery(query, contactId, payload); err != nil {
		return queryError(errors2.UPDATE_CONTACT, fmt.Sprintf("Failed to update contact: %s", contactId), err)
	}
	return nil
}

// UpsertAttribute writes a single attribute key without touching the rest of
// the map.
func (s *ContactStore) UpsertAttribute(contactId, name, value string) error {

	dbClient, err := getClient("updating contact attribute")
	if err != nil {
		return err
	}
	defer dbClient.Close()

	query := `UPDATE contacts SET attributes = jsonb_set(attributes, ARRAY[$2], to_jsonb($3::text), true)
	          WHERE contact_id = $1`
	if _, err := dbClient.ExecuteQuery(query, contactId, name, value); err != nil {
		return queryError(errors2.UPDATE_CONTACT,
			fmt.Sprintf("Failed to update attribute '%s' of contact: %s", name, contactId), err)
	}
	return nil
}

// DeleteContact removes a single contact record.
func (s *ContactStore) DeleteContact(contactId string) error {

	dbClient, err := getClient("deleting contact")
	if err != nil {
		return err
	}
	defer dbClient.Close()

	if _, err := dbClient.ExecuteQuery(`DELETE FROM contacts WHERE contact_id = $1`, contactId); err != nil {
		return queryError(errors2.DELETE_CONTACT, fmt.Sprintf("Failed to delete contact: %s", contactId), err)
	}
	return nil
}

// BulkDelete removes all given contacts in one statement.
func (s *ContactStore) BulkDelete(contactIds []string) error {

	if len(contactIds) == 0 {
		return nil
	}

	dbClient, err := getClient("bulk-deleting contacts")
	if err != nil {
		return err
	}
	defer dbClient.Close()

	query := `DELETE FROM contacts WHERE contact_id = ANY($1)`
	if _, err := dbClient.ExecuteQuery(query, pq.Array(contactIds)); err != nil {
		return queryError(errors2.DELETE_CONTACT,
			fmt.Sprintf("Failed to bulk-delete %d contacts", len(contactIds)), err)
	}
	return nil
}

// FindByEmail returns the first contact of the template whose email attribute
// matches exactly. Returns nil when there is no match.
func (s *ContactStore) FindByEmail(templateId, email string) (*model.Contact, error) {

	return s.findOne(
		`SELECT contact_id, template_id, attributes FROM contacts
		 WHERE template_id = $1 AND attributes->>$2 = $3
		 ORDER BY contact_id LIMIT 1`,
		templateId, constants.FieldEmail, email)
}

// FindByName returns the first contact of the template matching first and
// last name case-insensitively. Returns nil when there is no match.
func (s *ContactStore) FindByName(templateId, firstName, lastName string) (*model.Contact, error) {

	return s.findOne(
		`SELECT contact_id, template_id, attributes FROM contacts
		 WHERE template_id = $1
		   AND lower(coalesce(attributes->>$2, '')) = lower($3)
		   AND lower(coalesce(attributes->>$4, '')) = lower($5)
		 ORDER BY contact_id LIMIT 1`,
		templateId, constants.FieldFirstName, firstName, constants.FieldLastName, lastName)
}

// SaveImportBatch persists a batch of new and merged contacts in a single
// transaction, so a failing import leaves no partial state behind.
func (s *ContactStore) SaveImportBatch(creates []model.Contact, updates []model.Contact) error {

	if len(creates) == 0 && len(updates) == 0 {
		return nil
	}

	dbClient, err := getClient("saving import batch")
	if err != nil {
		return err
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx()
	if err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.TRANSACTION.Code,
			Message:     errors2.TRANSACTION.Message,
			Description: "Failed to begin transaction for import batch",
		}, err)
	}

	insertStmt := `INSERT INTO contacts (contact_id, template_id, attributes) VALUES ($1, $2, $3)`
	for _, contact := range creates {
		payload, err := marshalAttributes(contact.Attributes)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		if _, err := tx.Exec(insertStmt, contact.ContactId, contact.TemplateId, payload); err != nil {
			_ = tx.Rollback()
			return queryError(errors2.ADD_CONTACT,
				fmt.Sprintf("Failed to insert imported contact: %s", contact.ContactId), err)
		}
	}

	updateStmt := `UPDATE contacts SET attributes = $2 WHERE contact_id = $1`
	for _, contact := range updates {
		payload, err := marshalAttributes(contact.Attributes)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		if _, err := tx.Exec(updateStmt, contact.ContactId, payload); err != nil {
			_ = tx.Rollback()
			return queryError(errors2.UPDATE_CONTACT,
				fmt.Sprintf("Failed to update merged contact: %s", contact.ContactId), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.TRANSACTION.Code,
			Message:     errors2.TRANSACTION.Message,
			Description: "Failed to commit import batch",
		}, err)
	}
	return nil
}

func (s *ContactStore) findOne(query string, args ...interface{}) (*model.Contact, error) {

	dbClient, err := getClient("searching contacts")
	if err != nil {
		return nil, err
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(query, args...)
	if err != nil {
		return nil, queryError(errors2.GET_CONTACT, "Failed to search contacts", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return mapRowToContact(results[0])
}

func getClient(operation string) (client.DBClientInterface, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for %s", operation)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	return dbClient, nil
}

func queryError(msg errors2.ErrorMessage, description string, cause error) error {

	log.GetLogger().Debug(description, log.Error(cause))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        msg.Code,
		Message:     msg.Message,
		Description: description,
	}, cause)
}

func marshalAttributes(attributes map[string]string) ([]byte, error) {

	if attributes == nil {
		attributes = map[string]string{}
	}
	payload, err := json.Marshal(attributes)
	if err != nil {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: "Failed to marshal contact attributes",
		}, err)
	}
	return payload, nil
}

func mapRowToContact(row map[string]interface{}) (*model.Contact, error) {

	contact := &model.Contact{
		ContactId:  row["contact_id"].(string),
		TemplateId: row["template_id"].(string),
		Attributes: map[string]string{},
	}

	var raw []byte
	switch v := row["attributes"].(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &contact.Attributes); err != nil {
			return nil, errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.UNMARSHAL_JSON.Code,
				Message:     errors2.UNMARSHAL_JSON.Message,
				Description: fmt.Sprintf("Failed to unmarshal attributes of contact: %s", contact.ContactId),
			}, err)
		}
	}
	return contact, nil
}
