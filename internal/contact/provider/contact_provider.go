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

package provider

import (
	"github.com/crmstack/contact-data-service/internal/contact/service"
)

// ContactProviderInterface defines the interface for the contact service provider.
type ContactProviderInterface interface {
	GetContactService() service.ContactServiceInterface
}

// ContactProvider is the default implementation of ContactProviderInterface.
type ContactProvider struct{}

// NewContactProvider creates a new instance of ContactProvider.
func NewContactProvider() ContactProviderInterface {

	return &ContactProvider{}
}

// GetContactService returns the contact service instance.
func (cp *ContactProvider) GetContactService() service.ContactServiceInterface {

	return service.GetContactService()
}
