package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	errors2 "github.com/crmstack/contact-data-service/internal/system/errors"
	"github.com/crmstack/contact-data-service/internal/template/model"
)

type mockTemplateStore struct {
	mock.Mock
}

func (m *mockTemplateStore) InsertTemplate(template *model.Template) error {
	args := m.Called(template)
	return args.Error(0)
}

func (m *mockTemplateStore) GetTemplate(templateId string) (*model.Template, error) {
	args := m.Called(templateId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Template), args.Error(1)
}

func (m *mockTemplateStore) GetTemplateByName(name string) (*model.Template, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Template), args.Error(1)
}

func (m *mockTemplateStore) ListTemplates() ([]model.Template, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Template), args.Error(1)
}

func (m *mockTemplateStore) ReplaceStructure(template *model.Template) error {
	args := m.Called(template)
	return args.Error(0)
}

func (m *mockTemplateStore) DeleteTemplate(templateId string) error {
	args := m.Called(templateId)
	return args.Error(0)
}

type TemplateServiceTestSuite struct {
	suite.Suite
	mockStore *mockTemplateStore
	service   TemplateServiceInterface
}

func TestTemplateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TemplateServiceTestSuite))
}

func (s *TemplateServiceTestSuite) SetupTest() {
	s.mockStore = new(mockTemplateStore)
	s.service = &TemplateService{store: s.mockStore}
}

func validDefinition() *model.TemplateDefinition {
	return &model.TemplateDefinition{
		Name: "Lieferanten",
		Groups: []model.GroupDefinition{
			{
				Name: "Allgemein",
				Properties: []model.PropertyDefinition{
					{Name: "Vorname", DataType: "text"},
					{Name: "Nachname", DataType: "text"},
				},
			},
			{
				Name: "Kontakt",
				Properties: []model.PropertyDefinition{
					{Name: "E-Mail", DataType: "text"},
				},
			},
		},
	}
}

func (s *TemplateServiceTestSuite) TestCreateTemplateSuccess() {

	s.mockStore.On("GetTemplateByName", "Lieferanten").Return(nil, nil)
	s.mockStore.On("InsertTemplate", mock.AnythingOfType("*model.Template")).Return(nil)

	template, err := s.service.CreateTemplate(validDefinition())

	s.NoError(err)
	s.NotNil(template)
	s.NotEmpty(template.TemplateId)
	s.False(template.IsBuiltin)
	s.Len(template.Groups, 2)
	s.Equal(0, template.Groups[0].Position)
	s.Equal(1, template.Groups[1].Position)
	s.Len(template.Groups[0].Properties, 2)
	s.mockStore.AssertExpectations(s.T())
}

func (s *TemplateServiceTestSuite) TestCreateTemplateDuplicateName() {

	s.mockStore.On("GetTemplateByName", "Lieferanten").
		Return(&model.Template{TemplateId: "existing", Name: "Lieferanten"}, nil)

	template, err := s.service.CreateTemplate(validDefinition())

	s.Nil(template)
	s.Error(err)
	clientErr, ok := err.(*errors2.ClientError)
	s.True(ok)
	s.Equal(http.StatusConflict, clientErr.StatusCode)
	s.Equal(errors2.DUPLICATE_TEMPLATE_NAME.Code, clientErr.Code)
	s.mockStore.AssertNotCalled(s.T(), "InsertTemplate", mock.Anything)
}

func (s *TemplateServiceTestSuite) TestCreateTemplateRejectsEmptyName() {

	definition := validDefinition()
	definition.Name = "   "

	_, err := s.service.CreateTemplate(definition)

	clientErr, ok := err.(*errors2.ClientError)
	s.True(ok)
	s.Equal(errors2.INVALID_TEMPLATE_DEFINITION.Code, clientErr.Code)
}

func (s *TemplateServiceTestSuite) TestCreateTemplateRejectsUnknownDataType() {

	definition := validDefinition()
	definition.Groups[0].Properties[0].DataType = "timestamp"

	_, err := s.service.CreateTemplate(definition)

	clientErr, ok := err.(*errors2.ClientError)
	s.True(ok)
	s.Equal(errors2.INVALID_TEMPLATE_DEFINITION.Code, clientErr.Code)
	s.Equal(http.StatusBadRequest, clientErr.StatusCode)
}

func (s *TemplateServiceTestSuite) TestGetTemplateNotFound() {

	s.mockStore.On("GetTemplate", "missing").Return(nil, nil)

	_, err := s.service.GetTemplate("missing")

	clientErr, ok := err.(*errors2.ClientError)
	s.True(ok)
	s.Equal(http.StatusNotFound, clientErr.StatusCode)
	s.Equal(errors2.TEMPLATE_NOT_FOUND.Code, clientErr.Code)
}

func (s *TemplateServiceTestSuite) TestReplaceTemplateProtectedBuiltin() {

	s.mockStore.On("GetTemplate", "builtin-id").
		Return(&model.Template{TemplateId: "builtin-id", Name: "Standard", IsBuiltin: true}, nil)

	_, err := s.service.ReplaceTemplate("builtin-id", validDefinition())

	clientErr, ok := err.(*errors2.ClientError)
	s.True(ok)
	s.Equal(http.StatusForbidden, clientErr.StatusCode)
	s.Equal(errors2.PROTECTED_TEMPLATE.Code, clientErr.Code)
	s.mockStore.AssertNotCalled(s.T(), "ReplaceStructure", mock.Anything)
}

func (s *TemplateServiceTestSuite) TestReplaceTemplateRenameCollision() {

	s.mockStore.On("GetTemplate", "id-1").
		Return(&model.Template{TemplateId: "id-1", Name: "Alt"}, nil)
	s.mockStore.On("GetTemplateByName", "Lieferanten").
		Return(&model.Template{TemplateId: "id-2", Name: "Lieferanten"}, nil)

	_, err := s.service.ReplaceTemplate("id-1", validDefinition())

	clientErr, ok := err.(*errors2.ClientError)
	s.True(ok)
	s.Equal(http.StatusConflict, clientErr.StatusCode)
	s.Equal(errors2.DUPLICATE_TEMPLATE_NAME.Code, clientErr.Code)
}

func (s *TemplateServiceTestSuite) TestReplaceTemplateKeepsId() {

	s.mockStore.On("GetTemplate", "id-1").
		Return(&model.Template{TemplateId: "id-1", Name: "Lieferanten"}, nil)
	s.mockStore.On("ReplaceStructure", mock.AnythingOfType("*model.Template")).Return(nil)

	template, err := s.service.ReplaceTemplate("id-1", validDefinition())

	s.NoError(err)
	s.Equal("id-1", template.TemplateId)
	s.mockStore.AssertExpectations(s.T())
}

func (s *TemplateServiceTestSuite) TestDeleteTemplateProtectedBuiltin() {

	s.mockStore.On("GetTemplate", "builtin-id").
		Return(&model.Template{TemplateId: "builtin-id", Name: "Standard", IsBuiltin: true}, nil)

	err := s.service.DeleteTemplate("builtin-id")

	clientErr, ok := err.(*errors2.ClientError)
	s.True(ok)
	s.Equal(http.StatusForbidden, clientErr.StatusCode)
	s.mockStore.AssertNotCalled(s.T(), "DeleteTemplate", mock.Anything)
}

func (s *TemplateServiceTestSuite) TestSeedBuiltinTemplateIdempotent() {

	s.mockStore.On("GetTemplateByName", "Lieferanten").
		Return(&model.Template{TemplateId: "id-1", Name: "Lieferanten", IsBuiltin: true}, nil)

	err := s.service.SeedBuiltinTemplate(validDefinition())

	s.NoError(err)
	s.mockStore.AssertNotCalled(s.T(), "InsertTemplate", mock.Anything)
}

func (s *TemplateServiceTestSuite) TestSeedBuiltinTemplateCreates() {

	s.mockStore.On("GetTemplateByName", "Lieferanten").Return(nil, nil)
	s.mockStore.On("InsertTemplate", mock.MatchedBy(func(t *model.Template) bool {
		return t.IsBuiltin && t.Name == "Lieferanten"
	})).Return(nil)

	err := s.service.SeedBuiltinTemplate(validDefinition())

	s.NoError(err)
	s.mockStore.AssertExpectations(s.T())
}
