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

	"github.com/google/uuid"

	"github.com/crmstack/contact-data-service/internal/system/constants"
	errors2 "github.com/crmstack/contact-data-service/internal/system/errors"
	"github.com/crmstack/contact-data-service/internal/system/log"
	"github.com/crmstack/contact-data-service/internal/template/model"
	"github.com/crmstack/contact-data-service/internal/template/store"
)

// TemplateServiceInterface defines the business operations on templates.
type TemplateServiceInterface interface {
	CreateTemplate(definition *model.TemplateDefinition) (*model.Template, error)
	GetTemplate(templateId string) (*model.Template, error)
	ListTemplates() ([]model.Template, error)
	ReplaceTemplate(templateId string, definition *model.TemplateDefinition) (*model.Template, error)
	DeleteTemplate(templateId string) error
	SeedBuiltinTemplate(definition *model.TemplateDefinition) error
}

// TemplateService is the default implementation of TemplateServiceInterface.
type TemplateService struct {
	store store.TemplateStoreInterface
}

// GetTemplateService returns a template service backed by the postgres store.
func GetTemplateService() TemplateServiceInterface {

	return &TemplateService{
		store: &store.TemplateStore{},
	}
}

// CreateTemplate validates the definition and stores a new user template.
func (ts *TemplateService) CreateTemplate(definition *model.TemplateDefinition) (*model.Template, error) {

	if err := validateDefinition(definition); err != nil {
		return nil, err
	}

	existing, err := ts.store.GetTemplateByName(definition.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.DUPLICATE_TEMPLATE_NAME.Code,
			Message:     errors2.DUPLICATE_TEMPLATE_NAME.Message,
			Description: fmt.Sprintf("A template named '%s' already exists.", definition.Name),
		}, http.StatusConflict)
	}

	template := buildTemplate(uuid.New().String(), definition, false)
	if err := ts.store.InsertTemplate(template); err != nil {
		return nil, err
	}
	return template, nil
}

// GetTemplate returns the template with its full structure.
func (ts *TemplateService) GetTemplate(templateId string) (*model.Template, error) {

	template, err := ts.store.GetTemplate(templateId)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, errors2.NewClientError(errors2.TEMPLATE_NOT_FOUND, http.StatusNotFound)
	}
	return template, nil
}

// ListTemplates returns all templates ordered by name.
func (ts *TemplateService) ListTemplates() ([]model.Template, error) {

	return ts.store.ListTemplates()
}

// ReplaceTemplate swaps the entire structure of a user template with the
// given definition. Built-in templates are refused.
func (ts *TemplateService) ReplaceTemplate(templateId string, definition *model.TemplateDefinition) (
	*model.Template, error) {

	if err := validateDefinition(definition); err != nil {
		return nil, err
	}

	current, err := ts.store.GetTemplate(templateId)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, errors2.NewClientError(errors2.TEMPLATE_NOT_FOUND, http.StatusNotFound)
	}
	if current.IsBuiltin {
		return nil, errors2.NewClientError(errors2.PROTECTED_TEMPLATE, http.StatusForbidden)
	}

	// A rename may not collide with another template's name.
	if definition.Name != current.Name {
		other, err := ts.store.GetTemplateByName(definition.Name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.TemplateId != templateId {
			return nil, errors2.NewClientError(errors2.ErrorMessage{
				Code:        errors2.DUPLICATE_TEMPLATE_NAME.Code,
				Message:     errors2.DUPLICATE_TEMPLATE_NAME.Message,
				Description: fmt.Sprintf("A template named '%s' already exists.", definition.Name),
			}, http.StatusConflict)
		}
	}

	template := buildTemplate(templateId, definition, false)
	if err := ts.store.ReplaceStructure(template); err != nil {
		return nil, err
	}
	return template, nil
}

// DeleteTemplate removes a user template together with all of its contacts.
func (ts *TemplateService) DeleteTemplate(templateId string) error {

	current, err := ts.store.GetTemplate(templateId)
	if err != nil {
		return err
	}
	if current == nil {
		return errors2.NewClientError(errors2.TEMPLATE_NOT_FOUND, http.StatusNotFound)
	}
	if current.IsBuiltin {
		return errors2.NewClientError(errors2.PROTECTED_TEMPLATE, http.StatusForbidden)
	}
	return ts.store.DeleteTemplate(templateId)
}

// SeedBuiltinTemplate installs a bundled template definition if no template
// with the same name exists yet. Safe to call on every startup.
func (ts *TemplateService) SeedBuiltinTemplate(definition *model.TemplateDefinition) error {

	if err := validateDefinition(definition); err != nil {
		return err
	}

	existing, err := ts.store.GetTemplateByName(definition.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	template := buildTemplate(uuid.New().String(), definition, true)
	if err := ts.store.InsertTemplate(template); err != nil {
		return err
	}
	log.GetLogger().Info("Seeded built-in template: " + definition.Name)
	return nil
}

// buildTemplate materializes a definition into a storable template, assigning
// fresh ids and positions in definition order.
func buildTemplate(templateId string, definition *model.TemplateDefinition, builtin bool) *model.Template {

	template := &model.Template{
		TemplateId: templateId,
		Name:       definition.Name,
		IsBuiltin:  builtin,
		Groups:     make([]model.Group, 0, len(definition.Groups)),
	}
	for gi, groupDef := range definition.Groups {
		group := model.Group{
			GroupId:    uuid.New().String(),
			Name:       groupDef.Name,
			Position:   gi,
			Properties: make([]model.Property, 0, len(groupDef.Properties)),
		}
		for pi, propDef := range groupDef.Properties {
			group.Properties = append(group.Properties, model.Property{
				PropertyId: uuid.New().String(),
				Name:       propDef.Name,
				DataType:   propDef.DataType,
				Options:    propDef.Options,
				Position:   pi,
			})
		}
		template.Groups = append(template.Groups, group)
	}
	return template
}

func validateDefinition(definition *model.TemplateDefinition) error {

	if definition == nil || strings.TrimSpace(definition.Name) == "" {
		return invalidDefinition("Template name must not be empty.")
	}
	for _, group := range definition.Groups {
		if strings.TrimSpace(group.Name) == "" {
			return invalidDefinition("Group name must not be empty.")
		}
		for _, property := range group.Properties {
			if strings.TrimSpace(property.Name) == "" {
				return invalidDefinition(fmt.Sprintf("Property in group '%s' has an empty name.", group.Name))
			}
			if !constants.AllowedDataTypes[property.DataType] {
				return invalidDefinition(fmt.Sprintf("Unknown data type '%s' for property '%s'.",
					property.DataType, property.Name))
			}
		}
	}
	return nil
}

func invalidDefinition(description string) error {

	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.INVALID_TEMPLATE_DEFINITION.Code,
		Message:     errors2.INVALID_TEMPLATE_DEFINITION.Message,
		Description: description,
	}, http.StatusBadRequest)
}
