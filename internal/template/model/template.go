/*
 * Copyright (c) 2025, CRMStack (https://github.com/crmstack).
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

package model

// Property is a single named, typed attribute definition within a group.
// Options is interpreted per data type: comma-separated choices for select
// types, a referenced template id for the reference type.
type Property struct {
	PropertyId string `json:"property_id"`
	Name       string `json:"name" binding:"required"`
	DataType   string `json:"data_type" binding:"required"`
	Options    string `json:"options,omitempty"`
	Position   int    `json:"position"`
}

// Group is an ordered, named subdivision of a template's properties. It is
// purely organizational and affects only presentation and export sectioning.
type Group struct {
	GroupId    string     `json:"group_id"`
	Name       string     `json:"name" binding:"required"`
	Position   int        `json:"position"`
	Properties []Property `json:"properties"`
}

// Template is a named, user-editable definition of the attribute groups and
// properties a class of contact may carry. Built-in templates are protected
// from structural mutation and deletion.
type Template struct {
	TemplateId string  `json:"template_id"`
	Name       string  `json:"name"`
	IsBuiltin  bool    `json:"is_builtin"`
	Groups     []Group `json:"groups"`
}

// PropertyDefinition is the durable, re-importable representation of a
// property inside a TemplateDefinition document.
type PropertyDefinition struct {
	Name     string `json:"name"`
	DataType string `json:"data_type"`
	Options  string `json:"options,omitempty"`
}

type GroupDefinition struct {
	Name       string               `json:"name"`
	Properties []PropertyDefinition `json:"properties"`
}

// TemplateDefinition is the document used to create or replace a template,
// and to seed built-in templates from bundled definition files at startup.
type TemplateDefinition struct {
	Name   string            `json:"name"`
	Groups []GroupDefinition `json:"groups"`
}

// FlattenedProperties returns all properties across all groups in
// group-then-property insertion order. Both pipelines derive their column
// order from this sequence.
func (t *Template) FlattenedProperties() []Property {
	var props []Property
	for _, group := range t.Groups {
		props = append(props, group.Properties...)
	}
	return props
}
