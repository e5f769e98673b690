package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/fsdevblog/usdt-exchange/internal/service"
	"github.com/fsdevblog/usdt-exchange/internal/transport/api/testutils"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type UsersHandlerTestSuite struct {
	handlerSuite
}

func TestUsersHandlerSuite(t *testing.T) {
	suite.Run(t, new(UsersHandlerTestSuite))
}

func (s *UsersHandlerTestSuite) TestRegister() {
	url := RouteGroup + UsersRoute
	user := &domain.User{ID: 5, ExternalID: testExternalID, Username: "alice", CreatedAt: fixedTime}

	s.Run("new user", func() {
		s.mockUserSvc.EXPECT().Register(gomock.Any(), service.RegisterUserArgs{
			ExternalID: testExternalID,
			Username:   "alice",
		}).Return(user, true, nil)

		status, body := s.do(http.MethodPost, url, `{"username":"alice"}`,
			testutils.WithExternalUser(testExternalID))
		s.assertStatus(http.StatusCreated, status, body)
		s.JSONEq(`{
			"id": 5, "external_id": "tg-100", "username": "alice", "first_name": "", "last_name": "",
			"created_at": "2026-01-02T03:04:05Z"
		}`, body)
	})

	s.Run("already registered without body", func() {
		s.mockUserSvc.EXPECT().
			Register(gomock.Any(), service.RegisterUserArgs{ExternalID: testExternalID}).
			Return(user, false, nil)

		status, body := s.do(http.MethodPost, url, "",
			testutils.WithExternalUser(testExternalID))
		s.assertStatus(http.StatusOK, status, body)
	})

	s.Run("missing external id", func() {
		s.mockUserSvc.EXPECT().
			Register(gomock.Any(), service.RegisterUserArgs{}).
			Return(nil, false, errors.Join(domain.ErrInvalidInput, errors.New("external id is empty")))

		status, body := s.do(http.MethodPost, url, "")
		s.assertStatus(http.StatusUnprocessableEntity, status, body)
	})

	s.Run("username too long in bytes", func() {
		status, body := s.do(http.MethodPost, url,
			`{"username":"`+testutils.GenerateOverBytesUnderRunes(100)+`"}`,
			testutils.WithExternalUser(testExternalID))
		s.assertStatus(http.StatusUnprocessableEntity, status, body)
		s.Contains(body, "username")
	})

	s.Run("storage failure is masked", func() {
		s.mockUserSvc.EXPECT().Register(gomock.Any(), gomock.Any()).
			Return(nil, false, errors.New("connection reset"))

		status, body := s.do(http.MethodPost, url, "",
			testutils.WithExternalUser(testExternalID))
		s.assertStatus(http.StatusInternalServerError, status, body)
		s.JSONEq(`{"error":"internal server error"}`, body)
	})
}
