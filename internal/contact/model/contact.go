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

import (
	"strings"

	"github.com/crmstack/contact-data-service/internal/system/constants"
)

// Contact is a record bound to a template. Attributes is an open string map
// keyed by property name; keys outside the template structure are kept and
// simply not rendered by structure-driven views.
type Contact struct {
	ContactId  string            `json:"contact_id"`
	TemplateId string            `json:"template_id"`
	Attributes map[string]string `json:"attributes"`
}

// AttributeUpdate is the request body for a single-attribute write.
type AttributeUpdate struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value"`
}

// DisplayName derives a human-readable label: the full name attribute when
// present, otherwise first and last name, otherwise the company name.
func (c *Contact) DisplayName() string {

	if name := strings.TrimSpace(c.Attributes[constants.FieldFullName]); name != "" {
		return name
	}
	personal := strings.TrimSpace(strings.TrimSpace(c.Attributes[constants.FieldFirstName]) + " " +
		strings.TrimSpace(c.Attributes[constants.FieldLastName]))
	if personal != "" {
		return personal
	}
	return strings.TrimSpace(c.Attributes[constants.FieldCompanyName])
}
