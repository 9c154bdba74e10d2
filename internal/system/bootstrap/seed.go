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

// Package bootstrap installs the bundled built-in templates at startup.
package bootstrap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	errors2 "github.com/crmstack/contact-data-service/internal/system/errors"
	"github.com/crmstack/contact-data-service/internal/system/log"
	"github.com/crmstack/contact-data-service/internal/template/model"
	"github.com/crmstack/contact-data-service/internal/template/service"
)

// SeedBuiltinTemplates loads every *.json definition in the directory and
// installs the ones whose name is not taken yet. A missing directory is not
// an error; a broken definition file is.
func SeedBuiltinTemplates(templateDir string, templateService service.TemplateServiceInterface) error {

	entries, err := os.ReadDir(templateDir)
	if err != nil {
		if os.IsNotExist(err) {
			log.GetLogger().Warn("Template seed directory does not exist, skipping",
				log.String("dir", templateDir))
			return nil
		}
		return seedError(fmt.Sprintf("Failed to read template seed directory: %s", templateDir), err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(templateDir, name)
		content, err := os.ReadFile(path)
		if err != nil {
			return seedError(fmt.Sprintf("Failed to read template definition: %s", path), err)
		}
		var definition model.TemplateDefinition
		if err := json.Unmarshal(content, &definition); err != nil {
			return seedError(fmt.Sprintf("Failed to parse template definition: %s", path), err)
		}
		if err := templateService.SeedBuiltinTemplate(&definition); err != nil {
			return err
		}
	}
	return nil
}

func seedError(description string, cause error) error {

	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.SEED_TEMPLATES.Code,
		Message:     errors2.SEED_TEMPLATES.Message,
		Description: description,
	}, cause)
}
