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

package model

// NamedFile is an uploaded file held in memory for parsing.
type NamedFile struct {
	Name    string
	Content []byte
}

// UploadResult is the response of the upload step: the union of all record
// keys, a short preview, and the full parsed record set for the finalize
// step.
type UploadResult struct {
	Headers []string            `json:"headers"`
	Preview []map[string]string `json:"preview"`
	Records []map[string]string `json:"records"`
}

// FinalizeRequest carries the mapping decision of the user: source header to
// target property name. Unmapped headers are dropped.
type FinalizeRequest struct {
	TemplateId string              `json:"template_id"`
	Mapping    map[string]string   `json:"mapping"`
	Records    []map[string]string `json:"records"`
}

// FinalizeResult reports how many contacts the finalize step created.
type FinalizeResult struct {
	Created int `json:"created"`
}

// MailImportResult reports the outcome of a mail-item import run. Failed
// counts files that could not be extracted or parsed; the run continues past
// them.
type MailImportResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}
