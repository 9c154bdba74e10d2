package service

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	contactmodel "github.com/crmstack/contact-data-service/internal/contact/model"
	"github.com/crmstack/contact-data-service/internal/importer/model"
	"github.com/crmstack/contact-data-service/internal/importer/parser"
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

// stubParser returns canned records, or an error, per file name.
type stubParser struct {
	records []map[string]string
	err     error
}

func (s *stubParser) Parse(file model.NamedFile) ([]map[string]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

type ImportServiceTestSuite struct {
	suite.Suite
	mockStore         *mockContactStore
	mockTemplateStore *mockTemplateStore
	parsers           map[string]*stubParser
	service           *ImportService
}

func TestImportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ImportServiceTestSuite))
}

func (s *ImportServiceTestSuite) SetupTest() {
	s.mockStore = new(mockContactStore)
	s.mockTemplateStore = new(mockTemplateStore)
	s.parsers = map[string]*stubParser{}
	s.service = &ImportService{
		store:         s.mockStore,
		templateStore: s.mockTemplateStore,
		parserFor: func(filename string) (parser.Parser, error) {
			if p, ok := s.parsers[filename]; ok {
				return p, nil
			}
			return parser.ForFile(filename)
		},
	}
}

func (s *ImportServiceTestSuite) expectTemplate(id string) {
	s.mockTemplateStore.On("GetTemplate", id).
		Return(&templatemodel.Template{TemplateId: id, Name: "Kunden"}, nil)
}

func (s *ImportServiceTestSuite) TestUploadRejectsUnsupportedFile() {

	_, err := s.service.Upload([]model.NamedFile{{Name: "daten.exe"}})

	clientErr, ok := err.(*errors2.ClientError)
	s.True(ok)
	s.Equal(errors2.UNSUPPORTED_FORMAT.Code, clientErr.Code)
}

func (s *ImportServiceTestSuite) TestUploadUnionHeadersAndPreview() {

	s.parsers["a.csv"] = &stubParser{records: []map[string]string{
		{"Vorname": "Anna", "Ort": "Berlin"},
		{"Vorname": "Bernd"},
		{"Vorname": "Clara"},
		{"Vorname": "Dora"},
		{"Vorname": "Emil"},
		{"Vorname": "Frieda"},
	}}
	s.parsers["b.csv"] = &stubParser{records: []map[string]string{
		{"Nachname": "Muster"},
	}}

	result, err := s.service.Upload([]model.NamedFile{{Name: "a.csv"}, {Name: "b.csv"}})

	s.NoError(err)
	s.Equal([]string{"Nachname", "Ort", "Vorname"}, result.Headers)
	s.Len(result.Preview, 5)
	s.Len(result.Records, 7)
}

func (s *ImportServiceTestSuite) TestUploadFailsFastOnParseError() {

	s.parsers["a.csv"] = &stubParser{err: errors.New("broken quoting")}
	s.parsers["b.csv"] = &stubParser{records: []map[string]string{{"Vorname": "Anna"}}}

	_, err := s.service.Upload([]model.NamedFile{{Name: "a.csv"}, {Name: "b.csv"}})

	s.Error(err)
}

func (s *ImportServiceTestSuite) TestFinalizeRequiresMapping() {

	_, err := s.service.Finalize(&model.FinalizeRequest{TemplateId: "tpl-1"})

	clientErr, ok := err.(*errors2.ClientError)
	s.True(ok)
	s.Equal(errors2.INVALID_MAPPING.Code, clientErr.Code)
	s.Equal(http.StatusBadRequest, clientErr.StatusCode)
}

func (s *ImportServiceTestSuite) TestFinalizeMapsAndSkipsEmptyRecords() {

	s.expectTemplate("tpl-1")
	var savedCreates []contactmodel.Contact
	s.mockStore.On("SaveImportBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedCreates = args.Get(0).([]contactmodel.Contact)
		}).Return(nil)

	result, err := s.service.Finalize(&model.FinalizeRequest{
		TemplateId: "tpl-1",
		Mapping:    map[string]string{"first": "Vorname", "city": "Ort", "ignored": ""},
		Records: []map[string]string{
			{"first": "Anna", "city": "Berlin", "extra": "dropped"},
			{"extra": "only unmapped"},
			{"first": "  "},
		},
	})

	s.NoError(err)
	s.Equal(1, result.Created)
	s.Require().Len(savedCreates, 1)
	s.Equal("Anna", savedCreates[0].Attributes["Vorname"])
	s.Equal("Berlin", savedCreates[0].Attributes["Ort"])
	_, hasExtra := savedCreates[0].Attributes["extra"]
	s.False(hasExtra)
}

func (s *ImportServiceTestSuite) TestImportMailItemsCreatesNewContact() {

	s.expectTemplate("tpl-1")
	s.parsers["neu.msg"] = &stubParser{records: []map[string]string{
		{"Vorname": "Anna", "Nachname": "Muster", "E-Mail": "anna@example.org"},
	}}
	s.mockStore.On("FindByEmail", "tpl-1", "anna@example.org").Return(nil, nil)
	s.mockStore.On("FindByName", "tpl-1", "Anna", "Muster").Return(nil, nil)
	s.mockStore.On("SaveImportBatch", mock.Anything, mock.Anything).Return(nil)

	result, err := s.service.ImportMailItems("tpl-1", []model.NamedFile{{Name: "neu.msg"}})

	s.NoError(err)
	s.Equal(1, result.Created)
	s.Equal(0, result.Updated)
	s.Equal(0, result.Failed)
}

func (s *ImportServiceTestSuite) TestImportMailItemsMergesWithoutOverwriting() {

	s.expectTemplate("tpl-1")
	s.parsers["update.msg"] = &stubParser{records: []map[string]string{
		{"E-Mail": "anna@example.org", "Ort": "Hamburg", "Mobilnummer": "+49 170 1"},
	}}
	existing := &contactmodel.Contact{
		ContactId:  "c-1",
		TemplateId: "tpl-1",
		Attributes: map[string]string{"E-Mail": "anna@example.org", "Ort": "Berlin"},
	}
	s.mockStore.On("FindByEmail", "tpl-1", "anna@example.org").Return(existing, nil)
	var savedUpdates []contactmodel.Contact
	s.mockStore.On("SaveImportBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedUpdates = args.Get(1).([]contactmodel.Contact)
		}).Return(nil)

	result, err := s.service.ImportMailItems("tpl-1", []model.NamedFile{{Name: "update.msg"}})

	s.NoError(err)
	s.Equal(0, result.Created)
	s.Equal(1, result.Updated)
	s.Require().Len(savedUpdates, 1)
	s.Equal("Berlin", savedUpdates[0].Attributes["Ort"])
	s.Equal("+49 170 1", savedUpdates[0].Attributes["Mobilnummer"])
}

func (s *ImportServiceTestSuite) TestImportMailItemsFallsBackToNameMatch() {

	s.expectTemplate("tpl-1")
	s.parsers["ohne-mail.msg"] = &stubParser{records: []map[string]string{
		{"Vorname": "anna", "Nachname": "MUSTER", "Ort": "Hamburg"},
	}}
	existing := &contactmodel.Contact{
		ContactId:  "c-1",
		TemplateId: "tpl-1",
		Attributes: map[string]string{"Vorname": "Anna", "Nachname": "Muster"},
	}
	s.mockStore.On("FindByName", "tpl-1", "anna", "MUSTER").Return(existing, nil)
	s.mockStore.On("SaveImportBatch", mock.Anything, mock.Anything).Return(nil)

	result, err := s.service.ImportMailItems("tpl-1", []model.NamedFile{{Name: "ohne-mail.msg"}})

	s.NoError(err)
	s.Equal(1, result.Updated)
}

func (s *ImportServiceTestSuite) TestImportMailItemsDeduplicatesWithinRun() {

	s.expectTemplate("tpl-1")
	s.parsers["erste.msg"] = &stubParser{records: []map[string]string{
		{"Vorname": "Anna", "Nachname": "Muster", "E-Mail": "anna@example.org"},
	}}
	s.parsers["zweite.msg"] = &stubParser{records: []map[string]string{
		{"E-Mail": "anna@example.org", "Ort": "Berlin"},
	}}
	s.mockStore.On("FindByEmail", "tpl-1", "anna@example.org").Return(nil, nil).Once()
	s.mockStore.On("FindByName", "tpl-1", "Anna", "Muster").Return(nil, nil)
	var savedCreates, savedUpdates []contactmodel.Contact
	s.mockStore.On("SaveImportBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedCreates = args.Get(0).([]contactmodel.Contact)
			savedUpdates = args.Get(1).([]contactmodel.Contact)
		}).Return(nil)

	result, err := s.service.ImportMailItems("tpl-1",
		[]model.NamedFile{{Name: "erste.msg"}, {Name: "zweite.msg"}})

	s.NoError(err)
	s.Equal(1, result.Created)
	s.Equal(1, result.Updated)
	s.Require().Len(savedCreates, 1)
	s.Empty(savedUpdates)
	s.Equal("Berlin", savedCreates[0].Attributes["Ort"])
}

func (s *ImportServiceTestSuite) TestImportMailItemsCountsFailuresAndContinues() {

	s.expectTemplate("tpl-1")
	s.parsers["kaputt.msg"] = &stubParser{err: errors.New("extraction failed")}
	s.parsers["leer.msg"] = &stubParser{records: []map[string]string{}}
	s.parsers["gut.msg"] = &stubParser{records: []map[string]string{
		{"Vorname": "Clara", "Nachname": "Beispiel"},
	}}
	s.mockStore.On("FindByName", "tpl-1", "Clara", "Beispiel").Return(nil, nil)
	s.mockStore.On("SaveImportBatch", mock.Anything, mock.Anything).Return(nil)

	result, err := s.service.ImportMailItems("tpl-1",
		[]model.NamedFile{{Name: "kaputt.msg"}, {Name: "leer.msg"}, {Name: "gut.msg"}})

	s.NoError(err)
	s.Equal(2, result.Failed)
	s.Equal(1, result.Created)
}

func (s *ImportServiceTestSuite) TestImportMailItemsUnknownTemplate() {

	s.mockTemplateStore.On("GetTemplate", "missing").Return(nil, nil)

	_, err := s.service.ImportMailItems("missing", nil)

	clientErr, ok := err.(*errors2.ClientError)
	s.True(ok)
	s.Equal(errors2.TEMPLATE_NOT_FOUND.Code, clientErr.Code)
}
