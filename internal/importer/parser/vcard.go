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
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/emersion/go-vcard"

	"github.com/crmstack/contact-data-service/internal/importer/model"
	"github.com/crmstack/contact-data-service/internal/system/constants"
)

// VCardParser reads one record per vCard in the file. Cards that the strict
// decoder rejects are re-read with a tolerant line scanner, so a single
// malformed card degrades instead of failing the upload.
type VCardParser struct{}

func (p *VCardParser) Parse(file model.NamedFile) ([]map[string]string, error) {

	records := make([]map[string]string, 0)

	decoder := vcard.NewDecoder(bytes.NewReader(file.Content))
	for {
		card, err := decoder.Decode()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			// Strict decode failed somewhere in the file. Re-scan the whole
			// content line by line instead.
			return p.scanLines(file)
		}
		record := map[string]string{}
		for key, fields := range card {
			for _, field := range fields {
				applyVCardField(record, key, field.Params.Types(), field.Value)
			}
		}
		if len(record) > 0 {
			records = append(records, record)
		}
	}
}

// scanLines is the tolerant fallback: it splits cards on BEGIN/END markers
// and interprets every KEY;PARAMS:VALUE line it can make sense of.
func (p *VCardParser) scanLines(file model.NamedFile) ([]map[string]string, error) {

	records := make([]map[string]string, 0)
	var record map[string]string

	scanner := bufio.NewScanner(bytes.NewReader(file.Content))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "BEGIN:VCARD"):
			record = map[string]string{}
		case strings.HasPrefix(upper, "END:VCARD"):
			if len(record) > 0 {
				records = append(records, record)
			}
			record = nil
		case record != nil:
			key, types, value := splitVCardLine(line)
			if key != "" {
				applyVCardField(record, key, types, value)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, parseError(file.Name, err)
	}
	return records, nil
}

func splitVCardLine(line string) (key string, types []string, value string) {

	colon := strings.Index(line, ":")
	if colon < 0 {
		return "", nil, ""
	}
	value = strings.TrimSpace(line[colon+1:])

	head := line[:colon]
	parts := strings.Split(head, ";")
	key = strings.ToUpper(strings.TrimSpace(parts[0]))
	for _, param := range parts[1:] {
		param = strings.ToUpper(strings.TrimSpace(param))
		param = strings.TrimPrefix(param, "TYPE=")
		for _, t := range strings.Split(param, ",") {
			if t != "" {
				types = append(types, t)
			}
		}
	}
	return key, types, value
}

// applyVCardField maps one vCard property onto the canonical attribute
// vocabulary. Earlier values win, matching first-write-wins merge semantics.
func applyVCardField(record map[string]string, key string, types []string, value string) {

	value = strings.TrimSpace(value)
	if value == "" {
		return
	}

	hasType := func(want string) bool {
		for _, t := range types {
			if strings.EqualFold(t, want) {
				return true
			}
		}
		return false
	}
	set := func(field, v string) {
		v = strings.TrimSpace(v)
		if v != "" && record[field] == "" {
			record[field] = v
		}
	}

	switch strings.ToUpper(key) {
	case vcard.FieldName: // N: family;given;additional;prefix;suffix
		parts := strings.Split(value, ";")
		if len(parts) > 0 {
			set(constants.FieldLastName, parts[0])
		}
		if len(parts) > 1 {
			set(constants.FieldFirstName, parts[1])
		}
	case vcard.FieldFormattedName:
		set(constants.FieldFullName, value)
	case vcard.FieldOrganization:
		set(constants.FieldCompany, strings.Split(value, ";")[0])
	case vcard.FieldTitle:
		set(constants.FieldPosition, value)
	case vcard.FieldEmail:
		set(constants.FieldEmail, value)
	case vcard.FieldURL:
		set(constants.FieldWebsite, value)
	case vcard.FieldNote:
		set(constants.FieldNotes, value)
	case vcard.FieldTelephone:
		switch {
		case hasType("FAX"):
			set(constants.FieldFax, value)
		case hasType("CELL"):
			set(constants.FieldPhoneMobile, value)
		case hasType("HOME"):
			set(constants.FieldPhoneHome, value)
		default:
			set(constants.FieldPhoneBusiness, value)
		}
	case vcard.FieldAddress: // ADR: pobox;ext;street;locality;region;postal;country
		parts := strings.Split(value, ";")
		if len(parts) > 2 {
			set(constants.FieldStreet, parts[2])
		}
		if len(parts) > 3 {
			set(constants.FieldCity, parts[3])
		}
		if len(parts) > 5 {
			set(constants.FieldPostalCode, parts[5])
		}
		if len(parts) > 6 {
			set(constants.FieldCountry, parts[6])
		}
	}
}
