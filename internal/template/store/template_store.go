package store

import (
	"database/sql"
	"fmt"

	"github.com/crmstack/contact-data-service/internal/system/database/client"
	"github.com/crmstack/contact-data-service/internal/system/database/provider"
	errors2 "github.com/crmstack/contact-data-service/internal/system/errors"
	"github.com/crmstack/contact-data-service/internal/system/log"
	"github.com/crmstack/contact-data-service/internal/template/model"
)

// TemplateStoreInterface defines the persistence operations for templates
// and their group/property structure.
type TemplateStoreInterface interface {
	InsertTemplate(template *model.Template) error
	GetTemplate(templateId string) (*model.Template, error)
	GetTemplateByName(name string) (*model.Template, error)
	ListTemplates() ([]model.Template, error)
	ReplaceStructure(template *model.Template) error
	DeleteTemplate(templateId string) error
}

// TemplateStore is the postgres-backed implementation of TemplateStoreInterface.
type TemplateStore struct{}

// InsertTemplate stores a template with its full group/property structure
// in a single transaction.
func (s *TemplateStore) InsertTemplate(template *model.Template) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for adding template: %s", template.Name)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin transaction for adding template: %s", template.Name)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.TRANSACTION.Code,
			Message:     errors2.TRANSACTION.Message,
			Description: errorMsg,
		}, err)
	}

	query := `INSERT INTO templates (template_id, name, is_builtin) VALUES ($1, $2, $3)`
	if _, err := tx.Exec(query, template.TemplateId, template.Name, template.IsBuiltin); err != nil {
		return rollbackOnError(tx, err, errors2.ADD_TEMPLATE,
			fmt.Sprintf("Failed to insert template: %s", template.Name))
	}

	if err := insertStructure(tx, template); err != nil {
		return rollbackOnError(tx, err, errors2.ADD_TEMPLATE,
			fmt.Sprintf("Failed to insert structure of template: %s", template.Name))
	}

	if err := tx.Commit(); err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.TRANSACTION.Code,
			Message:     errors2.TRANSACTION.Message,
			Description: fmt.Sprintf("Failed to commit template: %s", template.Name),
		}, err)
	}
	logger.Info("Template added successfully: " + template.TemplateId)
	return nil
}

// GetTemplate retrieves a template with its structure. Returns nil if no
// template exists for the given id.
func (s *TemplateStore) GetTemplate(templateId string) (*model.Template, error) {

	return fetchTemplate(`SELECT template_id, name, is_builtin FROM templates WHERE template_id = $1`, templateId)
}

// GetTemplateByName retrieves a template by its unique name. Returns nil if
// no template carries the name.
func (s *TemplateStore) GetTemplateByName(name string) (*model.Template, error) {

	return fetchTemplate(`SELECT template_id, name, is_builtin FROM templates WHERE name = $1`, name)
}

// ListTemplates returns all templates ordered by name, each with its full
// structure loaded.
func (s *TemplateStore) ListTemplates() ([]model.Template, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get db client for listing templates"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(`SELECT template_id, name, is_builtin FROM templates ORDER BY name`)
	if err != nil {
		errorMsg := "Failed to list templates"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_TEMPLATE.Code,
			Message:     errors2.GET_TEMPLATE.Message,
			Description: errorMsg,
		}, err)
	}

	templates := make([]model.Template, 0, len(results))
	for _, row := range results {
		template := mapRowToTemplate(row)
		groups, err := loadStructure(dbClient, template.TemplateId)
		if err != nil {
			return nil, err
		}
		template.Groups = groups
		templates = append(templates, template)
	}
	return templates, nil
}

// ReplaceStructure updates the template name and swaps the entire
// group/property set in one transaction. Contacts of the template are left
// untouched.
func (s *TemplateStore) ReplaceStructure(template *model.Template) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for replacing template: %s", template.TemplateId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin transaction for replacing template: %s", template.TemplateId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.TRANSACTION.Code,
			Message:     errors2.TRANSACTION.Message,
			Description: errorMsg,
		}, err)
	}

	if _, err := tx.Exec(`UPDATE templates SET name = $1 WHERE template_id = $2`,
		template.Name, template.TemplateId); err != nil {
		return rollbackOnError(tx, err, errors2.UPDATE_TEMPLATE,
			fmt.Sprintf("Failed to rename template: %s", template.TemplateId))
	}

	// Properties go with their groups via FK cascade.
	if _, err := tx.Exec(`DELETE FROM template_groups WHERE template_id = $1`, template.TemplateId); err != nil {
		return rollbackOnError(tx, err, errors2.UPDATE_TEMPLATE,
			fmt.Sprintf("Failed to clear structure of template: %s", template.TemplateId))
	}

	if err := insertStructure(tx, template); err != nil {
		return rollbackOnError(tx, err, errors2.UPDATE_TEMPLATE,
			fmt.Sprintf("Failed to install new structure of template: %s", template.TemplateId))
	}

	if err := tx.Commit(); err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.TRANSACTION.Code,
			Message:     errors2.TRANSACTION.Message,
			Description: fmt.Sprintf("Failed to commit replaced template: %s", template.TemplateId),
		}, err)
	}
	logger.Info("Template structure replaced: " + template.TemplateId)
	return nil
}

// DeleteTemplate removes the template. Groups, properties and contacts are
// removed by FK cascade within the same statement.
func (s *TemplateStore) DeleteTemplate(templateId string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for deleting template: %s", templateId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	if _, err := dbClient.ExecuteQuery(`DELETE FROM templates WHERE template_id = $1`, templateId); err != nil {
		errorMsg := fmt.Sprintf("Failed to delete template: %s", templateId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_TEMPLATE.Code,
			Message:     errors2.DELETE_TEMPLATE.Message,
			Description: errorMsg,
		}, err)
	}
	logger.Info("Template deleted: " + templateId)
	return nil
}

func fetchTemplate(query string, arg interface{}) (*model.Template, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get db client for fetching template"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(query, arg)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to fetch template: %v", arg)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_TEMPLATE.Code,
			Message:     errors2.GET_TEMPLATE.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	template := mapRowToTemplate(results[0])
	groups, err := loadStructure(dbClient, template.TemplateId)
	if err != nil {
		return nil, err
	}
	template.Groups = groups
	return &template, nil
}

func loadStructure(dbClient client.DBClientInterface, templateId string) ([]model.Group, error) {

	groupRows, err := dbClient.ExecuteQuery(
		`SELECT group_id, name, position FROM template_groups WHERE template_id = $1 ORDER BY position`,
		templateId)
	if err != nil {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_TEMPLATE.Code,
			Message:     errors2.GET_TEMPLATE.Message,
			Description: fmt.Sprintf("Failed to load groups of template: %s", templateId),
		}, err)
	}

	propertyRows, err := dbClient.ExecuteQuery(
		`SELECT p.property_id, p.group_id, p.name, p.data_type, p.options, p.position
		 FROM template_properties p
		 JOIN template_groups g ON g.group_id = p.group_id
		 WHERE g.template_id = $1
		 ORDER BY g.position, p.position`,
		templateId)
	if err != nil {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_TEMPLATE.Code,
			Message:     errors2.GET_TEMPLATE.Message,
			Description: fmt.Sprintf("Failed to load properties of template: %s", templateId),
		}, err)
	}

	propertiesByGroup := make(map[string][]model.Property)
	for _, row := range propertyRows {
		groupId := row["group_id"].(string)
		propertiesByGroup[groupId] = append(propertiesByGroup[groupId], model.Property{
			PropertyId: row["property_id"].(string),
			Name:       row["name"].(string),
			DataType:   row["data_type"].(string),
			Options:    row["options"].(string),
			Position:   int(row["position"].(int64)),
		})
	}

	groups := make([]model.Group, 0, len(groupRows))
	for _, row := range groupRows {
		groupId := row["group_id"].(string)
		groups = append(groups, model.Group{
			GroupId:    groupId,
			Name:       row["name"].(string),
			Position:   int(row["position"].(int64)),
			Properties: propertiesByGroup[groupId],
		})
	}
	return groups, nil
}

func insertStructure(tx *sql.Tx, template *model.Template) error {

	groupStmt := `INSERT INTO template_groups (group_id, template_id, name, position) VALUES ($1, $2, $3, $4)`
	propertyStmt := `INSERT INTO template_properties (property_id, group_id, name, data_type, options, position)
	                 VALUES ($1, $2, $3, $4, $5, $6)`

	for _, group := range template.Groups {
		if _, err := tx.Exec(groupStmt, group.GroupId, template.TemplateId, group.Name, group.Position); err != nil {
			return err
		}
		for _, property := range group.Properties {
			if _, err := tx.Exec(propertyStmt, property.PropertyId, group.GroupId, property.Name,
				property.DataType, property.Options, property.Position); err != nil {
				return err
			}
		}
	}
	return nil
}

func rollbackOnError(tx *sql.Tx, cause error, msg errors2.ErrorMessage, description string) error {

	logger := log.GetLogger()
	if err := tx.Rollback(); err != nil {
		logger.Debug("Failed to rollback transaction", log.Error(err))
	}
	logger.Debug(description, log.Error(cause))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        msg.Code,
		Message:     msg.Message,
		Description: description,
	}, cause)
}

// mapRowToTemplate converts a DB row to the model without its structure.
func mapRowToTemplate(row map[string]interface{}) model.Template {
	return model.Template{
		TemplateId: row["template_id"].(string),
		Name:       row["name"].(string),
		IsBuiltin:  row["is_builtin"].(bool),
	}
}
