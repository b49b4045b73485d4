package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"license-hub/api/middleware"
	"license-hub/service"
	"license-hub/types"
)

type AgreementHandler struct {
	agreementSvc *service.AgreementService
	maxUpload    int64
	log          logrus.FieldLogger
	now          func() time.Time
}

func NewAgreementHandler(agreementSvc *service.AgreementService, maxUploadBytes int64, log logrus.FieldLogger) *AgreementHandler {
	return &AgreementHandler{
		agreementSvc: agreementSvc,
		maxUpload:    maxUploadBytes,
		log:          log,
		now:          time.Now,
	}
}

// --- 上传协议 ---

// NewAgreement 上传表单
func (h *AgreementHandler) NewAgreement(c *gin.Context) {
	c.HTML(http.StatusOK, "agreement_new.html", page(c, "Upload Agreement", menuUpload, gin.H{"Form": agreementForm{}}))
}

// ScanAgreement 提取 + 摘要，结果填入确认页的可编辑表单，此时不写库
func (h *AgreementHandler) ScanAgreement(c *gin.Context) {
	uploadErr := h.parseUpload(c)
	form := agreementForm{
		Title:    c.PostForm("title"),
		Country:  c.PostForm("country"),
		Brand:    c.PostForm("brand"),
		Licenser: c.PostForm("licenser"),
	}
	renderNew := func(status int, msg string) {
		c.HTML(status, "agreement_new.html", page(c, "Upload Agreement", menuUpload, gin.H{"Form": form, "Error": msg}))
	}
	if uploadErr != "" {
		renderNew(http.StatusRequestEntityTooLarge, uploadErr)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		renderNew(http.StatusBadRequest, "Please choose a PDF or DOCX file")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		renderNew(http.StatusBadRequest, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	summary, err := h.agreementSvc.ScanAgreement(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		_ = c.Error(err)
		renderNew(httpStatus(err, http.StatusBadGateway), "Scan failed: "+err.Error())
		return
	}

	today := h.now().Format(types.DateLayout)
	form.Summary = summary
	form.StartDate = today
	form.EndDate = today
	c.HTML(http.StatusOK, "agreement_review.html", page(c, "Review Agreement", menuUpload, gin.H{"Form": form}))
}

// SaveAgreement 用户确认后写库
func (h *AgreementHandler) SaveAgreement(c *gin.Context) {
	form := agreementForm{
		Title:      c.PostForm("title"),
		Country:    c.PostForm("country"),
		Brand:      c.PostForm("brand"),
		Licenser:   c.PostForm("licenser"),
		Summary:    c.PostForm("summary"),
		StartDate:  c.PostForm("start_date"),
		EndDate:    c.PostForm("end_date"),
		Indefinite: checked(c.PostForm("indefinite")),
	}
	renderReview := func(status int, msg string) {
		c.HTML(status, "agreement_review.html", page(c, "Review Agreement", menuUpload, gin.H{"Form": form, "Error": msg}))
	}

	now := h.now()
	start, err := types.ParseDate(form.StartDate, now)
	if err != nil {
		renderReview(http.StatusBadRequest, err.Error())
		return
	}
	end, err := types.ParseDate(form.EndDate, now)
	if err != nil && !form.Indefinite {
		renderReview(http.StatusBadRequest, err.Error())
		return
	}

	saved, err := h.agreementSvc.SaveAgreement(c.Request.Context(), middleware.Username(c), types.AgreementDraft{
		Title:      form.Title,
		Country:    form.Country,
		Brand:      form.Brand,
		Licenser:   form.Licenser,
		Summary:    form.Summary,
		StartDate:  start,
		EndDate:    end,
		Indefinite: form.Indefinite,
	})
	if err != nil {
		_ = c.Error(err)
		renderReview(http.StatusInternalServerError, "Save failed: "+err.Error())
		return
	}
	h.log.WithField("id", saved.ID).Debug("agreement form saved")
	c.Redirect(http.StatusSeeOther, "/agreements")
}

// --- 上传修订 ---

// NewAmendment 可选的原协议 (obsolete = false) + 文件
func (h *AgreementHandler) NewAmendment(c *gin.Context) {
	h.renderAmendmentForm(c, http.StatusOK, 0, "")
}

// ScanAmendment 与原协议已保存的摘要对比，差异填入确认页
func (h *AgreementHandler) ScanAmendment(c *gin.Context) {
	if msg := h.parseUpload(c); msg != "" {
		h.renderAmendmentForm(c, http.StatusRequestEntityTooLarge, 0, msg)
		return
	}
	baseID, err := parseID(c.PostForm("base_id"))
	if err != nil {
		h.renderAmendmentForm(c, http.StatusBadRequest, 0, "Please select a base agreement")
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.renderAmendmentForm(c, http.StatusBadRequest, baseID, "Please choose a PDF or DOCX file")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.renderAmendmentForm(c, http.StatusBadRequest, baseID, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	diff, err := h.agreementSvc.ScanAmendment(ctx, baseID, fileHeader.Filename, file)
	if err != nil {
		_ = c.Error(err)
		h.renderAmendmentForm(c, httpStatus(err, http.StatusBadGateway), baseID, "Compare failed: "+err.Error())
		return
	}

	baseTitle := ""
	if base, err := h.agreementSvc.Get(ctx, baseID); err == nil {
		baseTitle = base.Title
	}
	c.HTML(http.StatusOK, "amendment_review.html", page(c, "Review Amendment", menuAmendment, gin.H{
		"BaseID":    baseID,
		"BaseTitle": baseTitle,
		"Diff":      diff,
	}))
}

// SaveAmendment 写入 title=Amendment、parent_id=原协议 的新记录
func (h *AgreementHandler) SaveAmendment(c *gin.Context) {
	baseID, err := parseID(c.PostForm("base_id"))
	if err != nil {
		h.renderAmendmentForm(c, http.StatusBadRequest, 0, "Please select a base agreement")
		return
	}
	diff := c.PostForm("diff")

	_, err = h.agreementSvc.SaveAmendment(c.Request.Context(), middleware.Username(c), types.AmendmentDraft{
		BaseID: baseID,
		Diff:   diff,
	})
	if err != nil {
		_ = c.Error(err)
		c.HTML(httpStatus(err, http.StatusInternalServerError), "amendment_review.html", page(c, "Review Amendment", menuAmendment, gin.H{
			"BaseID":    baseID,
			"BaseTitle": "",
			"Diff":      diff,
			"Error":     "Save failed: " + err.Error(),
		}))
		return
	}
	c.Redirect(http.StatusSeeOther, "/agreements")
}

func (h *AgreementHandler) renderAmendmentForm(c *gin.Context, status int, baseID uint, msg string) {
	bases, err := h.agreementSvc.BaseAgreements(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		status, msg = http.StatusInternalServerError, "Failed to load agreements"
	}
	c.HTML(status, "amendment_new.html", page(c, "Upload Amendment", menuAmendment, gin.H{
		"Bases":  bases,
		"BaseID": baseID,
		"Error":  msg,
	}))
}

// --- 查看 ---

// ListAgreements 全部记录，可选关键字过滤
func (h *AgreementHandler) ListAgreements(c *gin.Context) {
	h.renderList(c, http.StatusOK, "")
}

// UpdateStatus 下拉框修改状态，立即写库
func (h *AgreementHandler) UpdateStatus(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.renderList(c, http.StatusBadRequest, "Invalid agreement id")
		return
	}
	if err := h.agreementSvc.UpdateStatus(c.Request.Context(), id, c.PostForm("status")); err != nil {
		_ = c.Error(err)
		h.renderList(c, httpStatus(err, http.StatusInternalServerError), err.Error())
		return
	}
	c.Redirect(http.StatusSeeOther, "/agreements")
}

func (h *AgreementHandler) renderList(c *gin.Context, status int, msg string) {
	q := c.Query("q")
	rows, err := h.agreementSvc.List(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		status, msg = http.StatusInternalServerError, "Failed to load agreements"
	}
	c.HTML(status, "agreements.html", page(c, "Agreements", menuView, gin.H{
		"Agreements": rows,
		"Statuses":   types.Statuses(),
		"Query":      q,
		"Error":      msg,
	}))
}

// parseUpload 限制请求体大小后解析 multipart 表单；超限时返回提示文字
// 其他解析错误留给 FormFile 处理
func (h *AgreementHandler) parseUpload(c *gin.Context) string {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	if _, err := c.MultipartForm(); err != nil && tooLarge(err) {
		h.log.WithError(err).WithField("limit", h.maxUpload).Warn("upload rejected")
		return fmt.Sprintf("File is larger than the %d MB upload limit", h.maxUpload>>20)
	}
	return ""
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	// multipart 解析在部分路径上不保留错误链
	return strings.Contains(err.Error(), "request body too large")
}

// checked 复选框取值
func checked(v string) bool {
	switch v {
	case "true", "on", "1":
		return true
	}
	return false
}
