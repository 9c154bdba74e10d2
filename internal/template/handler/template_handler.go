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

	errors2 "github.com/crmstack/contact-data-service/internal/system/errors"
	"github.com/crmstack/contact-data-service/internal/system/utils"
	"github.com/crmstack/contact-data-service/internal/template/model"
	"github.com/crmstack/contact-data-service/internal/template/provider"
)

// TemplateHandler handles HTTP requests of the template API.
type TemplateHandler struct{}

// NewTemplateHandler creates a new instance of TemplateHandler.
func NewTemplateHandler() *TemplateHandler {

	return &TemplateHandler{}
}

// HandleTemplatePostRequest creates a new template from a definition document.
func (th *TemplateHandler) HandleTemplatePostRequest(w http.ResponseWriter, r *http.Request) {

	definition, ok := decodeDefinition(w, r)
	if !ok {
		return
	}

	templateService := provider.NewTemplateProvider().GetTemplateService()
	template, err := templateService.CreateTemplate(definition)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, template)
}

// HandleTemplateListRequest returns all templates with their structure.
func (th *TemplateHandler) HandleTemplateListRequest(w http.ResponseWriter, r *http.Request) {

	templateService := provider.NewTemplateProvider().GetTemplateService()
	templates, err := templateService.ListTemplates()
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, templates)
}

// HandleTemplateGetRequest returns a single template by id.
func (th *TemplateHandler) HandleTemplateGetRequest(w http.ResponseWriter, r *http.Request) {

	templateService := provider.NewTemplateProvider().GetTemplateService()
	template, err := templateService.GetTemplate(r.PathValue("id"))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, template)
}

// HandleTemplatePropertiesRequest returns the template's properties across
// all groups in structure order.
func (th *TemplateHandler) HandleTemplatePropertiesRequest(w http.ResponseWriter, r *http.Request) {

	templateService := provider.NewTemplateProvider().GetTemplateService()
	template, err := templateService.GetTemplate(r.PathValue("id"))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	properties := template.FlattenedProperties()
	if properties == nil {
		properties = []model.Property{}
	}
	utils.WriteJSONResponse(w, http.StatusOK, properties)
}

// HandleTemplatePutRequest replaces the full structure of a template.
func (th *TemplateHandler) HandleTemplatePutRequest(w http.ResponseWriter, r *http.Request) {

	definition, ok := decodeDefinition(w, r)
	if !ok {
		return
	}

	templateService := provider.NewTemplateProvider().GetTemplateService()
	template, err := templateService.ReplaceTemplate(r.PathValue("id"), definition)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, template)
}

// HandleTemplateDeleteRequest deletes a template and all of its contacts.
func (th *TemplateHandler) HandleTemplateDeleteRequest(w http.ResponseWriter, r *http.Request) {

	templateService := provider.NewTemplateProvider().GetTemplateService()
	if err := templateService.DeleteTemplate(r.PathValue("id")); err != nil {
		utils.HandleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeDefinition(w http.ResponseWriter, r *http.Request) (*model.TemplateDefinition, bool) {

	var definition model.TemplateDefinition
	if err := json.NewDecoder(r.Body).Decode(&definition); err != nil {
		utils.HandleError(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "template"),
		}, http.StatusBadRequest))
		return nil, false
	}
	return &definition, true
}
