package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"license-hub/api/response"
	"license-hub/service"
	"license-hub/types"
)

// APIHandler /api/v1 下的 JSON 接口，与页面共用同一套服务
type APIHandler struct {
	agreementSvc *service.AgreementService
}

func NewAPIHandler(agreementSvc *service.AgreementService) *APIHandler {
	return &APIHandler{agreementSvc: agreementSvc}
}

func (h *APIHandler) List(c *gin.Context) {
	rows, err := h.agreementSvc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "查询失败")
		return
	}
	response.Success(c, toAgreementDTOs(rows))
}

func (h *APIHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	a, err := h.agreementSvc.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, httpStatus(err, http.StatusInternalServerError), err.Error())
		return
	}
	response.Success(c, toAgreementDTO(a))
}

func (h *APIHandler) UpdateStatus(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	var req types.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数错误: status 不能为空")
		return
	}

	ctx := c.Request.Context()
	if err := h.agreementSvc.UpdateStatus(ctx, id, req.Status); err != nil {
		_ = c.Error(err)
		response.Error(c, httpStatus(err, http.StatusInternalServerError), err.Error())
		return
	}
	a, err := h.agreementSvc.Get(ctx, id)
	if err != nil {
		response.Error(c, httpStatus(err, http.StatusInternalServerError), err.Error())
		return
	}
	response.Success(c, toAgreementDTO(a))
}
