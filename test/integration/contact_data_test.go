package integration

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	contactservice "github.com/crmstack/contact-data-service/internal/contact/service"
	contactstore "github.com/crmstack/contact-data-service/internal/contact/store"
	exportservice "github.com/crmstack/contact-data-service/internal/exporter/service"
	errors2 "github.com/crmstack/contact-data-service/internal/system/errors"
	templatemodel "github.com/crmstack/contact-data-service/internal/template/model"
	templateservice "github.com/crmstack/contact-data-service/internal/template/service"
	"github.com/crmstack/contact-data-service/test/setup"
)

type ContactDataIntegrationTestSuite struct {
	suite.Suite
	pg *setup.TestPostgres
}

func TestContactDataIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ContactDataIntegrationTestSuite))
}

func (s *ContactDataIntegrationTestSuite) SetupSuite() {
	pg, err := setup.SetupTestPostgres(context.Background(), filepath.Join("..", "..", "config", "schema.sql"))
	if err != nil {
		s.T().Skipf("Skipping integration tests, no docker environment available: %v", err)
	}
	s.pg = pg
}

func (s *ContactDataIntegrationTestSuite) TearDownSuite() {
	if s.pg != nil {
		s.pg.Teardown(context.Background())
	}
}

func definition(name string) *templatemodel.TemplateDefinition {
	return &templatemodel.TemplateDefinition{
		Name: name,
		Groups: []templatemodel.GroupDefinition{
			{
				Name: "Allgemein",
				Properties: []templatemodel.PropertyDefinition{
					{Name: "Vorname", DataType: "text"},
					{Name: "Nachname", DataType: "text"},
				},
			},
			{
				Name: "Kommunikation",
				Properties: []templatemodel.PropertyDefinition{
					{Name: "E-Mail", DataType: "text"},
				},
			},
		},
	}
}

func (s *ContactDataIntegrationTestSuite) TestTemplateReplaceRoundTrip() {

	svc := templateservice.GetTemplateService()
	created, err := svc.CreateTemplate(definition("Messe-Kontakte"))
	s.Require().NoError(err)

	replacement := definition("Messe-Kontakte 2026")
	replacement.Groups = append(replacement.Groups, templatemodel.GroupDefinition{
		Name: "Adresse",
		Properties: []templatemodel.PropertyDefinition{
			{Name: "Ort", DataType: "text"},
		},
	})
	replaced, err := svc.ReplaceTemplate(created.TemplateId, replacement)
	s.Require().NoError(err)
	s.Equal(created.TemplateId, replaced.TemplateId)

	fetched, err := svc.GetTemplate(created.TemplateId)
	s.Require().NoError(err)
	s.Equal("Messe-Kontakte 2026", fetched.Name)
	s.Require().Len(fetched.Groups, 3)
	s.Equal("Adresse", fetched.Groups[2].Name)
	s.Len(fetched.FlattenedProperties(), 4)
}

func (s *ContactDataIntegrationTestSuite) TestDuplicateTemplateNameRejected() {

	svc := templateservice.GetTemplateService()
	_, err := svc.CreateTemplate(definition("Eindeutig"))
	s.Require().NoError(err)

	_, err = svc.CreateTemplate(definition("Eindeutig"))
	clientErr, ok := err.(*errors2.ClientError)
	s.Require().True(ok)
	s.Equal(errors2.DUPLICATE_TEMPLATE_NAME.Code, clientErr.Code)
}

func (s *ContactDataIntegrationTestSuite) TestTemplateDeleteCascadesToContacts() {

	tplSvc := templateservice.GetTemplateService()
	template, err := tplSvc.CreateTemplate(definition("Wegwerf"))
	s.Require().NoError(err)

	contactSvc := contactservice.GetContactService()
	contact, err := contactSvc.CreateContact(template.TemplateId, map[string]string{"Vorname": "Anna"})
	s.Require().NoError(err)

	s.Require().NoError(tplSvc.DeleteTemplate(template.TemplateId))

	store := &contactstore.ContactStore{}
	gone, err := store.GetContact(contact.ContactId)
	s.Require().NoError(err)
	s.Nil(gone)
}

func (s *ContactDataIntegrationTestSuite) TestPartialAttributeUpdate() {

	tplSvc := templateservice.GetTemplateService()
	template, err := tplSvc.CreateTemplate(definition("Teil-Update"))
	s.Require().NoError(err)

	contactSvc := contactservice.GetContactService()
	contact, err := contactSvc.CreateContact(template.TemplateId, map[string]string{
		"Vorname": "Anna", "Nachname": "Muster",
	})
	s.Require().NoError(err)

	store := &contactstore.ContactStore{}
	s.Require().NoError(store.UpsertAttribute(contact.ContactId, "E-Mail", "anna@example.org"))

	fetched, err := store.GetContact(contact.ContactId)
	s.Require().NoError(err)
	s.Equal("Anna", fetched.Attributes["Vorname"])
	s.Equal("Muster", fetched.Attributes["Nachname"])
	s.Equal("anna@example.org", fetched.Attributes["E-Mail"])
}

func (s *ContactDataIntegrationTestSuite) TestFindByEmailAndName() {

	tplSvc := templateservice.GetTemplateService()
	template, err := tplSvc.CreateTemplate(definition("Duplikate"))
	s.Require().NoError(err)

	contactSvc := contactservice.GetContactService()
	_, err = contactSvc.CreateContact(template.TemplateId, map[string]string{
		"Vorname": "Anna", "Nachname": "Muster", "E-Mail": "anna@example.org",
	})
	s.Require().NoError(err)

	store := &contactstore.ContactStore{}
	byEmail, err := store.FindByEmail(template.TemplateId, "anna@example.org")
	s.Require().NoError(err)
	s.Require().NotNil(byEmail)

	byName, err := store.FindByName(template.TemplateId, "ANNA", "muster")
	s.Require().NoError(err)
	s.Require().NotNil(byName)
	s.Equal(byEmail.ContactId, byName.ContactId)

	missing, err := store.FindByEmail(template.TemplateId, "nobody@example.org")
	s.Require().NoError(err)
	s.Nil(missing)
}

func (s *ContactDataIntegrationTestSuite) TestCSVExportFromDatabase() {

	tplSvc := templateservice.GetTemplateService()
	template, err := tplSvc.CreateTemplate(definition("Export-Test"))
	s.Require().NoError(err)

	contactSvc := contactservice.GetContactService()
	_, err = contactSvc.CreateContact(template.TemplateId, map[string]string{
		"Vorname": "Anna", "E-Mail": "anna@example.org",
	})
	s.Require().NoError(err)

	result, err := exportservice.GetExportService().Export(template.TemplateId, "csv")
	s.Require().NoError(err)
	s.True(strings.HasPrefix(result.Filename, "Export-Test_export_"))
	lines := strings.Split(strings.TrimSpace(string(result.Content)), "\n")
	s.Require().Len(lines, 2)
	s.Equal("Vorname,Nachname,E-Mail", lines[0])
	s.Equal("Anna,,anna@example.org", lines[1])
}
