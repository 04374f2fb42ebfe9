package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stouper/wms-sub002/internal/application/picking"
	"github.com/stouper/wms-sub002/internal/domain/shared"
	"github.com/stouper/wms-sub002/internal/interfaces/http/dto"
)

// JobHandler handles job lifecycle requests
type JobHandler struct {
	BaseHandler
	jobService *picking.JobService
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(jobService *picking.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// PlanLineRequest is one planned line in a create/add request
type PlanLineRequest struct {
	Value     string          `json:"value" binding:"required"`
	MakerCode string          `json:"maker_code"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateJobRequest is the payload for creating a job
type CreateJobRequest struct {
	StoreCode string            `json:"store_code" binding:"required"`
	Title     string            `json:"title"`
	Memo      string            `json:"memo"`
	Items     []PlanLineRequest `json:"items"`
}

// AddItemsRequest is the payload for planning additional lines
type AddItemsRequest struct {
	Items []PlanLineRequest `json:"items" binding:"required,min=1"`
}

// AllowOverpickRequest toggles the job's overpick permission
type AllowOverpickRequest struct {
	Allow bool `json:"allow"`
}

// ParcelRequest is the payload for attaching parcel details
type ParcelRequest struct {
	Recipient  string `json:"recipient" binding:"required"`
	Phone      string `json:"phone"`
	PostalCode string `json:"postal_code"`
	Address    string `json:"address"`
}

// Create handles POST /api/v1/jobs
func (h *JobHandler) Create(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := picking.CreateJobInput{
		StoreCode: req.StoreCode,
		Title:     req.Title,
		Memo:      req.Memo,
		Items:     toPlanLines(req.Items),
	}
	resp, err := h.jobService.CreateJob(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /api/v1/jobs/:id
func (h *JobHandler) Get(c *gin.Context) {
	id, ok := h.jobID(c)
	if !ok {
		return
	}
	resp, err := h.jobService.GetJob(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/jobs
func (h *JobHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := listRequestToFilter(req)
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if storeCode := c.Query("store_code"); storeCode != "" {
		filter.Filters["store_code"] = storeCode
	}

	jobs, total, err := h.jobService.ListJobs(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, jobs, total, filter.Page, filter.PageSize)
}

// AddItems handles POST /api/v1/jobs/:id/items
func (h *JobHandler) AddItems(c *gin.Context) {
	id, ok := h.jobID(c)
	if !ok {
		return
	}
	var req AddItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.jobService.AddItems(c.Request.Context(), id, toPlanLines(req.Items))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetAllowOverpick handles PUT /api/v1/jobs/:id/allow-overpick
func (h *JobHandler) SetAllowOverpick(c *gin.Context) {
	id, ok := h.jobID(c)
	if !ok {
		return
	}
	var req AllowOverpickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.jobService.SetAllowOverpick(c.Request.Context(), id, req.Allow)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AttachParcel handles PUT /api/v1/jobs/:id/parcel
func (h *JobHandler) AttachParcel(c *gin.Context) {
	id, ok := h.jobID(c)
	if !ok {
		return
	}
	var req ParcelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.jobService.AttachParcel(c.Request.Context(), id, picking.ParcelInput{
		Recipient:  req.Recipient,
		Phone:      req.Phone,
		PostalCode: req.PostalCode,
		Address:    req.Address,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *JobHandler) jobID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid job ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid job ID")
		return uuid.Nil, false
	}
	return id, true
}

func toPlanLines(items []PlanLineRequest) []picking.PlanLineInput {
	lines := make([]picking.PlanLineInput, 0, len(items))
	for _, item := range items {
		lines = append(lines, picking.PlanLineInput{
			Value:     item.Value,
			MakerCode: item.MakerCode,
			Name:      item.Name,
			Quantity:  item.Quantity,
		})
	}
	return lines
}

func listRequestToFilter(req dto.ListRequest) shared.Filter {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	return filter
}
