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
	"sort"
	"strings"

	"github.com/google/uuid"

	contactmodel "github.com/crmstack/contact-data-service/internal/contact/model"
	contactstore "github.com/crmstack/contact-data-service/internal/contact/store"
	"github.com/crmstack/contact-data-service/internal/importer/model"
	"github.com/crmstack/contact-data-service/internal/importer/parser"
	"github.com/crmstack/contact-data-service/internal/system/constants"
	errors2 "github.com/crmstack/contact-data-service/internal/system/errors"
	"github.com/crmstack/contact-data-service/internal/system/log"
	templatestore "github.com/crmstack/contact-data-service/internal/template/store"
)

// ImportServiceInterface defines the two-step file import and the mail-item
// import pipeline.
type ImportServiceInterface interface {
	Upload(files []model.NamedFile) (*model.UploadResult, error)
	Finalize(request *model.FinalizeRequest) (*model.FinalizeResult, error)
	ImportMailItems(templateId string, files []model.NamedFile) (*model.MailImportResult, error)
}

// ImportService is the default implementation of ImportServiceInterface.
type ImportService struct {
	store         contactstore.ContactStoreInterface
	templateStore templatestore.TemplateStoreInterface
	parserFor     func(filename string) (parser.Parser, error)
}

// GetImportService returns an import service backed by the postgres stores
// and the extension-based parser registry.
func GetImportService() ImportServiceInterface {

	return &ImportService{
		store:         &contactstore.ContactStore{},
		templateStore: &templatestore.TemplateStore{},
		parserFor:     parser.ForFile,
	}
}

// Upload parses all files and returns the union of record keys plus a
// preview. The whole upload fails on the first unsupported or malformed
// file.
func (is *ImportService) Upload(files []model.NamedFile) (*model.UploadResult, error) {

	if len(files) == 0 {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: "No files uploaded.",
		}, http.StatusBadRequest)
	}

	var records []map[string]string
	for _, file := range files {
		p, err := is.parserFor(file.Name)
		if err != nil {
			return nil, err
		}
		parsed, err := p.Parse(file)
		if err != nil {
			return nil, err
		}
		records = append(records, parsed...)
	}

	headerSet := map[string]bool{}
	for _, record := range records {
		for key := range record {
			headerSet[key] = true
		}
	}
	headers := make([]string, 0, len(headerSet))
	for key := range headerSet {
		headers = append(headers, key)
	}
	sort.Strings(headers)

	preview := records
	if len(preview) > constants.UploadPreviewRows {
		preview = preview[:constants.UploadPreviewRows]
	}

	return &model.UploadResult{
		Headers: headers,
		Preview: preview,
		Records: records,
	}, nil
}

// Finalize applies the header-to-property mapping and stores all resulting
// contacts in one transaction. Records that map to nothing are skipped.
func (is *ImportService) Finalize(request *model.FinalizeRequest) (*model.FinalizeResult, error) {

	if request == nil || len(request.Mapping) == 0 {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_MAPPING.Code,
			Message:     errors2.INVALID_MAPPING.Message,
			Description: "At least one header must be mapped to a property.",
		}, http.StatusBadRequest)
	}

	if len(request.Records) == 0 {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: "No records to import.",
		}, http.StatusBadRequest)
	}

	template, err := is.templateStore.GetTemplate(request.TemplateId)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, errors2.NewClientError(errors2.TEMPLATE_NOT_FOUND, http.StatusNotFound)
	}

	var creates []contactmodel.Contact
	for _, record := range request.Records {
		attributes := map[string]string{}
		for header, property := range request.Mapping {
			if property == "" {
				continue
			}
			if value := strings.TrimSpace(record[header]); value != "" {
				attributes[property] = value
			}
		}
		if len(attributes) == 0 {
			continue
		}
		creates = append(creates, contactmodel.Contact{
			ContactId:  uuid.New().String(),
			TemplateId: request.TemplateId,
			Attributes: attributes,
		})
	}

	if err := is.store.SaveImportBatch(creates, nil); err != nil {
		return nil, err
	}
	return &model.FinalizeResult{Created: len(creates)}, nil
}

// ImportMailItems extracts each mail item, deduplicates against existing
// contacts of the template, and merges duplicates without overwriting
// values that are already set. Files that cannot be processed are counted
// and skipped.
func (is *ImportService) ImportMailItems(templateId string, files []model.NamedFile) (
	*model.MailImportResult, error) {

	template, err := is.templateStore.GetTemplate(templateId)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, errors2.NewClientError(errors2.TEMPLATE_NOT_FOUND, http.StatusNotFound)
	}

	logger := log.GetLogger()
	result := &model.MailImportResult{}
	batch := newMailBatch(templateId, is.store)

	for _, file := range files {
		p, err := is.parserFor(file.Name)
		if err != nil {
			logger.Warn("Skipping mail item with unsupported extension", log.String("file", file.Name))
			result.Failed++
			continue
		}
		records, err := p.Parse(file)
		if err != nil {
			logger.Warn("Skipping unreadable mail item", log.String("file", file.Name), log.Error(err))
			result.Failed++
			continue
		}
		if len(records) == 0 || len(records[0]) == 0 {
			result.Failed++
			continue
		}

		created, err := batch.absorb(records[0])
		if err != nil {
			return nil, err
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	if err := is.store.SaveImportBatch(batch.creates(), batch.updates()); err != nil {
		return nil, err
	}
	return result, nil
}

// mailBatch accumulates the contacts of one mail-item run and resolves
// duplicates against both the database and earlier files of the same run.
type mailBatch struct {
	templateId string
	store      contactstore.ContactStoreInterface

	order     []*contactmodel.Contact
	isNew     map[*contactmodel.Contact]bool
	byEmail   map[string]*contactmodel.Contact
	byName    map[string]*contactmodel.Contact
	byStoreId map[string]*contactmodel.Contact
}

func newMailBatch(templateId string, store contactstore.ContactStoreInterface) *mailBatch {

	return &mailBatch{
		templateId: templateId,
		store:      store,
		isNew:      map[*contactmodel.Contact]bool{},
		byEmail:    map[string]*contactmodel.Contact{},
		byName:     map[string]*contactmodel.Contact{},
		byStoreId:  map[string]*contactmodel.Contact{},
	}
}

// absorb merges the record into an existing contact or creates a new one.
// Reports true when a new contact was created.
func (b *mailBatch) absorb(record map[string]string) (bool, error) {

	target, err := b.match(record)
	if err != nil {
		return false, err
	}
	if target != nil {
		mergeAttributes(target.Attributes, record)
		b.index(target)
		return false, nil
	}

	contact := &contactmodel.Contact{
		ContactId:  uuid.New().String(),
		TemplateId: b.templateId,
		Attributes: record,
	}
	b.order = append(b.order, contact)
	b.isNew[contact] = true
	b.index(contact)
	return true, nil
}

// match looks up a duplicate: exact email first, case-insensitive first and
// last name as the fallback. Contacts absorbed earlier in the run take
// precedence over database rows.
func (b *mailBatch) match(record map[string]string) (*contactmodel.Contact, error) {

	if email := record[constants.FieldEmail]; email != "" {
		if contact, ok := b.byEmail[email]; ok {
			return contact, nil
		}
		contact, err := b.store.FindByEmail(b.templateId, email)
		if err != nil {
			return nil, err
		}
		if contact != nil {
			return b.adopt(contact), nil
		}
	}

	firstName := record[constants.FieldFirstName]
	lastName := record[constants.FieldLastName]
	if firstName == "" && lastName == "" {
		return nil, nil
	}
	if contact, ok := b.byName[nameKey(firstName, lastName)]; ok {
		return contact, nil
	}
	contact, err := b.store.FindByName(b.templateId, firstName, lastName)
	if err != nil {
		return nil, err
	}
	if contact != nil {
		return b.adopt(contact), nil
	}
	return nil, nil
}

// adopt brings a database contact into the run so later files can hit it in
// memory instead of re-reading a stale row.
func (b *mailBatch) adopt(contact *contactmodel.Contact) *contactmodel.Contact {

	if existing, ok := b.byStoreId[contact.ContactId]; ok {
		return existing
	}
	b.order = append(b.order, contact)
	b.byStoreId[contact.ContactId] = contact
	b.index(contact)
	return contact
}

func (b *mailBatch) index(contact *contactmodel.Contact) {

	if email := contact.Attributes[constants.FieldEmail]; email != "" {
		if _, ok := b.byEmail[email]; !ok {
			b.byEmail[email] = contact
		}
	}
	firstName := contact.Attributes[constants.FieldFirstName]
	lastName := contact.Attributes[constants.FieldLastName]
	if firstName != "" || lastName != "" {
		key := nameKey(firstName, lastName)
		if _, ok := b.byName[key]; !ok {
			b.byName[key] = contact
		}
	}
}

func (b *mailBatch) creates() []contactmodel.Contact {

	var out []contactmodel.Contact
	for _, contact := range b.order {
		if b.isNew[contact] {
			out = append(out, *contact)
		}
	}
	return out
}

func (b *mailBatch) updates() []contactmodel.Contact {

	var out []contactmodel.Contact
	for _, contact := range b.order {
		if !b.isNew[contact] {
			out = append(out, *contact)
		}
	}
	return out
}

// mergeAttributes fills only attributes that are still empty on the target.
func mergeAttributes(target, source map[string]string) {

	for key, value := range source {
		if value == "" {
			continue
		}
		if strings.TrimSpace(target[key]) == "" {
			target[key] = value
		}
	}
}

func nameKey(firstName, lastName string) string {

	return strings.ToLower(strings.TrimSpace(firstName)) + "\x00" + strings.ToLower(strings.TrimSpace(lastName))
}
