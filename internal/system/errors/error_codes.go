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

package errors

const errorPrefix = "CDS-"

var (
	// Server error codes

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Unable to initialize database client.",
	}

	EXECUTE_QUERY = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while executing database query.",
	}

	TRANSACTION = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while handling database transaction.",
	}

	MARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while marshalling JSON.",
	}

	UNMARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while un-marshalling JSON.",
	}

	ADD_TEMPLATE = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while adding template.",
	}

	GET_TEMPLATE = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while fetching template(s).",
	}

	UPDATE_TEMPLATE = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while updating template.",
	}

	DELETE_TEMPLATE = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while deleting template.",
	}

	ADD_CONTACT = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Error while adding contact.",
	}

	GET_CONTACT = ErrorMessage{
		Code:    errorPrefix + "15011",
		Message: "Error while fetching contact(s).",
	}

	UPDATE_CONTACT = ErrorMessage{
		Code:    errorPrefix + "15012",
		Message: "Error while updating contact.",
	}

	DELETE_CONTACT = ErrorMessage{
		Code:    errorPrefix + "15013",
		Message: "Error while deleting contact(s).",
	}

	SEED_TEMPLATES = ErrorMessage{
		Code:    errorPrefix + "15014",
		Message: "Error while seeding built-in templates.",
	}

	EXTRACT_MAIL_ITEM = ErrorMessage{
		Code:    errorPrefix + "15015",
		Message: "Error while extracting mail-item content.",
	}

	WRITE_EXPORT = ErrorMessage{
		Code:    errorPrefix + "15016",
		Message: "Error while writing export document.",
	}

	// Client error codes

	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Invalid body format.",
	}

	TEMPLATE_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11002",
		Message:     "Template not found.",
		Description: "No template found for the given template_id.",
	}

	CONTACT_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11003",
		Message:     "Contact not found.",
		Description: "No contact record found for the given contact_id.",
	}

	DUPLICATE_TEMPLATE_NAME = ErrorMessage{
		Code:    errorPrefix + "11004",
		Message: "Template name already in use.",
	}

	PROTECTED_TEMPLATE = ErrorMessage{
		Code:        errorPrefix + "11005",
		Message:     "Template is a protected built-in.",
		Description: "Built-in templates cannot be modified or deleted. Save the edited structure as a new template instead.",
	}

	UNSUPPORTED_FORMAT = ErrorMessage{
		Code:    errorPrefix + "11006",
		Message: "File type is not supported for import.",
	}

	PARSE_FILE = ErrorMessage{
		Code:    errorPrefix + "11007",
		Message: "File content is malformed for its format.",
	}

	UNKNOWN_EXPORT_FORMAT = ErrorMessage{
		Code:    errorPrefix + "11008",
		Message: "Export format is not recognized.",
	}

	INVALID_MAPPING = ErrorMessage{
		Code:    errorPrefix + "11009",
		Message: "Import mapping is missing or empty.",
	}

	INVALID_TEMPLATE_DEFINITION = ErrorMessage{
		Code:    errorPrefix + "11010",
		Message: "Template definition validation failed.",
	}
)
