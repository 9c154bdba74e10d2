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
	"github.com/crmstack/contact-data-service/internal/importer/service"
)

// ImportProviderInterface defines the interface for the import service provider.
type ImportProviderInterface interface {
	GetImportService() service.ImportServiceInterface
}

// ImportProvider is the default implementation of ImportProviderInterface.
type ImportProvider struct{}

// NewImportProvider creates a new instance of ImportProvider.
func NewImportProvider() ImportProviderInterface {

	return &ImportProvider{}
}

// GetImportService returns the import service instance.
func (ip *ImportProvider) GetImportService() service.ImportServiceInterface {

	return service.GetImportService()
}
