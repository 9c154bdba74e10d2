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

package parser

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/crmstack/contact-data-service/internal/importer/model"
	"github.com/crmstack/contact-data-service/internal/system/config"
	"github.com/crmstack/contact-data-service/internal/system/constants"
	errors2 "github.com/crmstack/contact-data-service/internal/system/errors"
)

// ExtractFunc turns a mail-item file on disk into its plain-text content.
type ExtractFunc func(path string) (string, error)

// MailItemParser reads Outlook contact items (.msg/.oft). The binary
// container is handed to an external extraction command; the resulting text
// is then matched against a bilingual label table. One file yields at most
// one record.
type MailItemParser struct {
	Extract ExtractFunc
}

// NewMailItemParser returns a parser using the extraction command from the
// runtime configuration.
func NewMailItemParser() *MailItemParser {

	return &MailItemParser{Extract: extractWithConfiguredCommand}
}

func (p *MailItemParser) Parse(file model.NamedFile) ([]map[string]string, error) {

	tmp, err := os.CreateTemp("", "mailitem-*"+filepath.Ext(file.Name))
	if err != nil {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.EXTRACT_MAIL_ITEM.Code,
			Message:     errors2.EXTRACT_MAIL_ITEM.Message,
			Description: fmt.Sprintf("Failed to stage mail item '%s' for extraction", file.Name),
		}, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(file.Content); err != nil {
		_ = tmp.Close()
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.EXTRACT_MAIL_ITEM.Code,
			Message:     errors2.EXTRACT_MAIL_ITEM.Message,
			Description: fmt.Sprintf("Failed to stage mail item '%s' for extraction", file.Name),
		}, err)
	}
	_ = tmp.Close()

	text, err := p.Extract(tmp.Name())
	if err != nil {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.EXTRACT_MAIL_ITEM.Code,
			Message:     errors2.EXTRACT_MAIL_ITEM.Message,
			Description: fmt.Sprintf("Extraction command failed for '%s'", file.Name),
		}, err)
	}

	record := ParseMailItemText(text)
	if len(record) == 0 {
		return []map[string]string{}, nil
	}
	return []map[string]string{record}, nil
}

// extractWithConfiguredCommand runs the configured external converter with
// the staged file path appended to its argument list.
func extractWithConfiguredCommand(path string) (string, error) {

	conf := config.GetCDSRuntime().Config.MailExtract
	if conf.Command == "" {
		return "", fmt.Errorf("no mail extraction command configured")
	}

	args := append(append([]string{}, conf.Args...), path)
	output, err := exec.Command(conf.Command, args...).Output()
	if err != nil {
		return "", fmt.Errorf("extraction command %q failed: %w", conf.Command, err)
	}
	return string(output), nil
}

// labelPatterns maps canonical attribute names to the bilingual label
// expressions found in extracted Outlook contact text.
var labelPatterns = map[string]*regexp.Regexp{
	constants.FieldFirstName:     regexp.MustCompile(`(?i)(?:First Name|Vorname):[ \t]*(.+)`),
	constants.FieldLastName:      regexp.MustCompile(`(?i)(?:Last Name|Nachname):[ \t]*(.+)`),
	constants.FieldCompany:       regexp.MustCompile(`(?i)(?:Company|Firma):[ \t]*(.+)`),
	constants.FieldPosition:      regexp.MustCompile(`(?i)(?:Job Title|Position):[ \t]*(.+)`),
	constants.FieldPhoneBusiness: regexp.MustCompile(`(?i)(?:Business|Geschäftlich):[ \t]*([+\d\s()/.-]+)`),
	constants.FieldPhoneHome:     regexp.MustCompile(`(?i)(?:Home|Privat):[ \t]*([+\d\s()/.-]+)`),
	constants.FieldPhoneMobile:   regexp.MustCompile(`(?i)(?:Mobile|Mobil):[ \t]*([+\d\s()/.-]+)`),
	constants.FieldFax:           regexp.MustCompile(`(?i)Fax:[ \t]*([+\d\s()/.-]+)`),
	constants.FieldEmail:         regexp.MustCompile(`(?i)E-?Mail[^:\n]*:[ \t]*([\w.-]+@[\w.-]+)`),
	constants.FieldWebsite:       regexp.MustCompile(`(?i)(?:Web Page|Website|Webseite):[ \t]*(\S+)`),
}

var addressPattern = regexp.MustCompile(`(?i)(?:Business Address|Geschäftsadresse):[ \t]*(.+)`)

// addressParts decomposes "street, postal city" into its components.
var addressParts = regexp.MustCompile(`(.+),\s*(\d{4,5})\s+(.+)`)

var notesPattern = regexp.MustCompile(`(?is)Notes:\s*(.*)`)

// ParseMailItemText matches extracted contact text against the label table
// and returns the canonical attribute record.
func ParseMailItemText(text string) map[string]string {

	record := map[string]string{}

	for field, pattern := range labelPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			if value := strings.TrimSpace(m[1]); value != "" {
				record[field] = value
			}
		}
	}

	if m := addressPattern.FindStringSubmatch(text); m != nil {
		address := strings.TrimSpace(m[1])
		if parts := addressParts.FindStringSubmatch(address); parts != nil {
			record[constants.FieldStreet] = strings.TrimSpace(parts[1])
			record[constants.FieldPostalCode] = parts[2]
			record[constants.FieldCity] = strings.TrimSpace(parts[3])
		} else if address != "" {
			record[constants.FieldStreet] = address
		}
	}

	if m := notesPattern.FindStringSubmatch(text); m != nil {
		if value := strings.TrimSpace(m[1]); value != "" {
			record[constants.FieldNotes] = value
		}
	}

	return record
}
