package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"geolink/internal/delivery/http/validator"
	"geolink/internal/domain/entity"
	"geolink/internal/usecase"
	"geolink/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubZoneUsecase serves canned zones and records inputs.
type stubZoneUsecase struct {
	zones      []entity.Zone
	created    *usecase.CreateZoneInput
	getErr     error
	importErr  error
	importRes  usecase.ImportResult
	importData []byte
}

func (s *stubZoneUsecase) ListZones(context.Context) []entity.Zone { return s.zones }

func (s *stubZoneUsecase) GetZone(_ context.Context, id uuid.UUID) (entity.Zone, error) {
	if s.getErr != nil {
		return entity.Zone{}, s.getErr
	}

	return entity.Zone{ID: id}, nil
}

func (s *stubZoneUsecase) CreateZone(_ context.Context, input *usecase.CreateZoneInput) (entity.Zone, error) {
	s.created = input

	return entity.Zone{ID: uuid.New(), Name: input.Name, Lat: input.Lat, Lng: input.Lng, IsActive: true}, nil
}

func (s *stubZoneUsecase) UpdateZone(_ context.Context, id uuid.UUID, _ *usecase.UpdateZoneInput) (entity.Zone, error) {
	return entity.Zone{ID: id}, nil
}

func (s *stubZoneUsecase) MoveZone(_ context.Context, id uuid.UUID, lat, lng float64) (entity.Zone, error) {
	return entity.Zone{ID: id, Lat: lat, Lng: lng}, nil
}

func (s *stubZoneUsecase) DeleteZone(context.Context, uuid.UUID) error { return nil }
func (s *stubZoneUsecase) ClearZones(context.Context) error            { return nil }

func (s *stubZoneUsecase) Export(context.Context) ([]byte, error) {
	return json.Marshal(s.zones)
}

func (s *stubZoneUsecase) Import(_ context.Context, data []byte, _ bool) (usecase.ImportResult, error) {
	s.importData = data

	return s.importRes, s.importErr
}

func newZoneTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = validator.New()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func newZoneHandler(stub *stubZoneUsecase) *ZoneHandler {
	return NewZoneHandler(ZoneHandlerParams{
		ZoneUC: stub,
		Logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
	})
}

func TestZoneHandler_ListZones(t *testing.T) {
	stub := &stubZoneUsecase{zones: []entity.Zone{{ID: uuid.New(), Name: "Home", IsActive: true}}}
	h := newZoneHandler(stub)

	c, rec := newZoneTestContext(t, http.MethodGet, "/zones", "")
	require.NoError(t, h.ListZones(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Success bool          `json:"success"`
		Data    []entity.Zone `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Home", envelope.Data[0].Name)
}

func TestZoneHandler_CreateZone(t *testing.T) {
	stub := &stubZoneUsecase{}
	h := newZoneHandler(stub)

	body := `{"name":"Home","lat":-23.55,"lng":-46.63,"radius":150,"entryTrigger":"http://example.com/on"}`
	c, rec := newZoneTestContext(t, http.MethodPost, "/zones", body)
	require.NoError(t, h.CreateZone(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, stub.created)
	assert.Equal(t, "Home", stub.created.Name)
	assert.Equal(t, 150.0, stub.created.Radius)
}

func TestZoneHandler_CreateZoneValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "latitude out of range", body: `{"lat":95,"lng":0}`},
		{name: "negative radius", body: `{"lat":0,"lng":0,"radius":-5}`},
		{name: "bad trigger uri", body: `{"lat":0,"lng":0,"entryTrigger":"not a url"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newZoneHandler(&stubZoneUsecase{})
			c, rec := newZoneTestContext(t, http.MethodPost, "/zones", tt.body)

			require.NoError(t, h.CreateZone(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestZoneHandler_GetZoneNotFound(t *testing.T) {
	h := newZoneHandler(&stubZoneUsecase{getErr: impl.ErrZoneNotFound})

	c, rec := newZoneTestContext(t, http.MethodGet, "/zones/"+uuid.NewString(), "")
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	require.NoError(t, h.GetZone(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestZoneHandler_GetZoneBadID(t *testing.T) {
	h := newZoneHandler(&stubZoneUsecase{})

	c, rec := newZoneTestContext(t, http.MethodGet, "/zones/nope", "")
	c.SetParamNames("id")
	c.SetParamValues("nope")

	require.NoError(t, h.GetZone(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestZoneHandler_ImportInvalidPayload(t *testing.T) {
	h := newZoneHandler(&stubZoneUsecase{importErr: impl.ErrImportInvalid})

	body := `{"zones":[{"lat":1}],"confirm":true}`
	c, rec := newZoneTestContext(t, http.MethodPost, "/zones/import", body)

	require.NoError(t, h.ImportZones(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestZoneHandler_ImportForwardsRawDocument(t *testing.T) {
	stub := &stubZoneUsecase{importRes: usecase.ImportResult{Count: 1, Applied: true}}
	h := newZoneHandler(stub)

	body := `{"zones":[{"name":"Home","lat":1,"lng":2}],"confirm":true}`
	c, rec := newZoneTestContext(t, http.MethodPost, "/zones/import", body)

	require.NoError(t, h.ImportZones(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"name":"Home","lat":1,"lng":2}]`, string(stub.importData))
}
