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

package handler

import (
	"net/http"

	"github.com/crmstack/contact-data-service/internal/exporter/provider"
	"github.com/crmstack/contact-data-service/internal/system/utils"
)

// ExportHandler handles HTTP requests of the export API.
type ExportHandler struct{}

// NewExportHandler creates a new instance of ExportHandler.
func NewExportHandler() *ExportHandler {

	return &ExportHandler{}
}

// HandleExportRequest streams the rendered export of a template as an
// attachment. The format comes from the path.
func (eh *ExportHandler) HandleExportRequest(w http.ResponseWriter, r *http.Request) {

	exportService := provider.NewExportProvider().GetExportService()
	result, err := exportService.Export(r.PathValue("id"), r.PathValue("format"))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteAttachment(w, result.Content, result.MimeType, result.Filename)
}
