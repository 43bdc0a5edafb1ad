package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/maneuverx/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type guidanceAPI struct {
	guidanceService GuidanceService
	log             *zap.Logger
}

func New(guidanceService GuidanceService, log *zap.Logger) *guidanceAPI {
	return &guidanceAPI{
		guidanceService: guidanceService,
		log:             log,
	}
}

func (api *guidanceAPI) Routes(group *helper.RouteGroup) {
	group.GET("/classifyTurns", api.classifyTurns)
	group.GET("/junction", api.junctionView)
}

func (api *guidanceAPI) parseRequest(w http.ResponseWriter, r *http.Request) (classifyTurnsRequest, bool) {
	var (
		request classifyTurnsRequest
		err     error
	)

	query := r.URL.Query()

	request.Lat, err = strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lat is required and must be a valid float"))
		return request, false
	}
	request.Lon, err = strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lon is required and must be a valid float"))
		return request, false
	}
	request.Bearing, err = strconv.ParseFloat(query.Get("bearing"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("bearing is required and must be a valid float"))
		return request, false
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return request, false
	}
	return request, true
}

func (api *guidanceAPI) classifyTurns(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request, ok := api.parseRequest(w, r)
	if !ok {
		return
	}

	turns, err := api.guidanceService.ClassifyTurns(request.Lat, request.Lon, request.Bearing)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewClassifyTurnsResponse(turns)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *guidanceAPI) junctionView(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request, ok := api.parseRequest(w, r)
	if !ok {
		return
	}

	shape, err := api.guidanceService.JunctionView(request.Lat, request.Lon, request.Bearing)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewJunctionViewResponse(shape)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
