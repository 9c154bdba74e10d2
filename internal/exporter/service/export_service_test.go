package service

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	contactmodel "github.com/crmstack/contact-data-service/internal/contact/model"
	errors2 "github.com/crmstack/contact-data-service/internal/system/errors"
	templatemodel "github.com/crmstack/contact-data-service/internal/template/model"
)

type mockContactStore struct {
	mock.Mock
}

func (m *mockContactStore) InsertContact(contact *contactmodel.Contact) error {
	return m.Called(contact).Error(0)
}

func (m *mockContactStore) GetContact(contactId string) (*contactmodel.Contact, error) {
	args := m.Called(contactId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contactmodel.Contact), args.Error(1)
}

func (m *mockContactStore) ListByTemplate(templateId string) ([]contactmodel.Contact, error) {
	args := m.Called(templateId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]contactmodel.Contact), args.Error(1)
}

func (m *mockContactStore) UpdateAttributes(contactId string, attributes map[string]string) error {
	return m.Called(contactId, attributes).Error(0)
}

func (m *mockContactStore) UpsertAttribute(contactId, name, value string) error {
	return m.Called(contactId, name, value).Error(0)
}

func (m *mockContactStore) DeleteContact(contactId string) error {
	return m.Called(contactId).Error(0)
}

func (m *mockContactStore) BulkDelete(contactIds []string) error {
	return m.Called(contactIds).Error(0)
}

func (m *mockContactStore) FindByEmail(templateId, email string) (*contactmodel.Contact, error) {
	args := m.Called(templateId, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contactmodel.Contact), args.Error(1)
}

func (m *mockContactStore) FindByName(templateId, firstName, lastName string) (*contactmodel.Contact, error) {
	args := m.Called(templateId, firstName, lastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contactmodel.Contact), args.Error(1)
}

func (m *mockContactStore) SaveImportBatch(creates []contactmodel.Contact, updates []contactmodel.Contact) error {
	return m.Called(creates, updates).Error(0)
}

type mockTemplateStore struct {
	mock.Mock
}

func (m *mockTemplateStore) InsertTemplate(template *templatemodel.Template) error {
	return m.Called(template).Error(0)
}

func (m *mockTemplateStore) GetTemplate(templateId string) (*templatemodel.Template, error) {
	args := m.Called(templateId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*templatemodel.Template), args.Error(1)
}

func (m *mockTemplateStore) GetTemplateByName(name string) (*templatemodel.Template, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*templatemodel.Template), args.Error(1)
}

func (m *mockTemplateStore) ListTemplates() ([]templatemodel.Template, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]templatemodel.Template), args.Error(1)
}

func (m *mockTemplateStore) ReplaceStructure(template *templatemodel.Template) error {
	return m.Called(template).Error(0)
}

func (m *mockTemplateStore) DeleteTemplate(templateId string) error {
	return m.Called(templateId).Error(0)
}

type ExportServiceTestSuite struct {
	suite.Suite
	mockStore         *mockContactStore
	mockTemplateStore *mockTemplateStore
	service           ExportServiceInterface
}

func TestExportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExportServiceTestSuite))
}

func (s *ExportServiceTestSuite) SetupTest() {
	s.mockStore = new(mockContactStore)
	s.mockTemplateStore = new(mockTemplateStore)
	s.service = &ExportService{store: s.mockStore, templateStore: s.mockTemplateStore}
}

func (s *ExportServiceTestSuite) template() *templatemodel.Template {
	return &templatemodel.Template{
		TemplateId: "tpl-1",
		Name:       "Kunden",
		Groups: []templatemodel.Group{
			{Name: "Allgemein", Properties: []templatemodel.Property{
				{Name: "Vorname", DataType: "text"},
			}},
		},
	}
}

func (s *ExportServiceTestSuite) TestExportUnknownFormat() {

	_, err := s.service.Export("tpl-1", "docx")

	clientErr, ok := err.(*errors2.ClientError)
	s.True(ok)
	s.Equal(errors2.UNKNOWN_EXPORT_FORMAT.Code, clientErr.Code)
	s.Equal(http.StatusBadRequest, clientErr.StatusCode)
	s.mockTemplateStore.AssertNotCalled(s.T(), "GetTemplate", mock.Anything)
}

func (s *ExportServiceTestSuite) TestExportUnknownTemplate() {

	s.mockTemplateStore.On("GetTemplate", "missing").Return(nil, nil)

	_, err := s.service.Export("missing", "csv")

	clientErr, ok := err.(*errors2.ClientError)
	s.True(ok)
	s.Equal(errors2.TEMPLATE_NOT_FOUND.Code, clientErr.Code)
}

func (s *ExportServiceTestSuite) TestExportCSVFilenameAndContent() {

	s.mockTemplateStore.On("GetTemplate", "tpl-1").Return(s.template(), nil)
	s.mockStore.On("ListByTemplate", "tpl-1").Return([]contactmodel.Contact{
		{ContactId: "c-1", Attributes: map[string]string{"Vorname": "Anna"}},
	}, nil)

	result, err := s.service.Export("tpl-1", "CSV")

	s.NoError(err)
	expectedName := fmt.Sprintf("Kunden_export_%s.csv", time.Now().Format("2006-01-02"))
	s.Equal(expectedName, result.Filename)
	s.Equal("text/csv", result.MimeType)
	s.True(strings.HasPrefix(string(result.Content), "Vorname"))
}

func (s *ExportServiceTestSuite) TestExportPDFMimeType() {

	s.mockTemplateStore.On("GetTemplate", "tpl-1").Return(s.template(), nil)
	s.mockStore.On("ListByTemplate", "tpl-1").Return([]contactmodel.Contact{}, nil)

	result, err := s.service.Export("tpl-1", "pdf")

	s.NoError(err)
	s.Equal("application/pdf", result.MimeType)
	s.True(strings.HasPrefix(string(result.Content), "%PDF"))
}
