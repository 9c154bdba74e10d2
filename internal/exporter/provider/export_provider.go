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
	"github.com/crmstack/contact-data-service/internal/exporter/service"
)

// ExportProviderInterface defines the interface for the export service provider.
type ExportProviderInterface interface {
	GetExportService() service.ExportServiceInterface
}

// ExportProvider is the default implementation of ExportProviderInterface.
type ExportProvider struct{}

// NewExportProvider creates a new instance of ExportProvider.
func NewExportProvider() ExportProviderInterface {

	return &ExportProvider{}
}

// GetExportService returns the export service instance.
func (ep *ExportProvider) GetExportService() service.ExportServiceInterface {

	return service.GetExportService()
}
