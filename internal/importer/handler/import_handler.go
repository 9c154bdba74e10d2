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
	"io"
	"net/http"

	"github.com/crmstack/contact-data-service/internal/importer/model"
	"github.com/crmstack/contact-data-service/internal/importer/provider"
	errors2 "github.com/crmstack/contact-data-service/internal/system/errors"
	"github.com/crmstack/contact-data-service/internal/system/utils"
)

// maxUploadBytes bounds the in-memory part of a multipart upload.
const maxUploadBytes = 32 << 20

// ImportHandler handles HTTP requests of the import API.
type ImportHandler struct{}

// NewImportHandler creates a new instance of ImportHandler.
func NewImportHandler() *ImportHandler {

	return &ImportHandler{}
}

// HandleUploadRequest parses the uploaded files and returns headers plus a
// record preview for the mapping step.
func (ih *ImportHandler) HandleUploadRequest(w http.ResponseWriter, r *http.Request) {

	files, ok := readMultipartFiles(w, r)
	if !ok {
		return
	}

	importService := provider.NewImportProvider().GetImportService()
	result, err := importService.Upload(files)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, result)
}

// HandleFinalizeRequest applies the chosen mapping and creates the contacts.
func (ih *ImportHandler) HandleFinalizeRequest(w http.ResponseWriter, r *http.Request) {

	var request model.FinalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.HandleError(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "import finalize"),
		}, http.StatusBadRequest))
		return
	}

	importService := provider.NewImportProvider().GetImportService()
	result, err := importService.Finalize(&request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, result)
}

// HandleMailItemImportRequest runs the deduplicating mail-item import for
// the template in the path.
func (ih *ImportHandler) HandleMailItemImportRequest(w http.ResponseWriter, r *http.Request) {

	files, ok := readMultipartFiles(w, r)
	if !ok {
		return
	}

	importService := provider.NewImportProvider().GetImportService()
	result, err := importService.ImportMailItems(r.PathValue("id"), files)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, result)
}

// readMultipartFiles collects all file parts of the "files" form field.
func readMultipartFiles(w http.ResponseWriter, r *http.Request) ([]model.NamedFile, bool) {

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.HandleError(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: "Request body must be multipart form data with a 'files' field.",
		}, http.StatusBadRequest))
		return nil, false
	}

	var files []model.NamedFile
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["files"] {
			part, err := header.Open()
			if err != nil {
				utils.HandleError(w, errors2.NewClientError(errors2.ErrorMessage{
					Code:        errors2.BAD_REQUEST.Code,
					Message:     errors2.BAD_REQUEST.Message,
					Description: "Failed to open uploaded file part.",
				}, http.StatusBadRequest))
				return nil, false
			}
			content, err := io.ReadAll(part)
			_ = part.Close()
			if err != nil {
				utils.HandleError(w, errors2.NewClientError(errors2.ErrorMessage{
					Code:        errors2.BAD_REQUEST.Code,
					Message:     errors2.BAD_REQUEST.Message,
					Description: "Failed to read uploaded file part.",
				}, http.StatusBadRequest))
				return nil, false
			}
			files = append(files, model.NamedFile{Name: header.Filename, Content: content})
		}
	}
	return files, true
}
