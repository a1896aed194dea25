package handler

import (
	"math/big"
	"net/http"
	"strconv"

	"github.com/blues/edufund/internal/event"
	"github.com/blues/edufund/internal/funding"
	"github.com/blues/edufund/internal/logic"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CampaignHandler 活动处理器
type CampaignHandler struct {
	engine        *funding.Engine
	dispatcher    *event.Dispatcher
	campaignLogic *logic.CampaignLogic
}

// NewCampaignHandler 创建活动处理器
func NewCampaignHandler(engine *funding.Engine, dispatcher *event.Dispatcher, db *gorm.DB) *CampaignHandler {
	return &CampaignHandler{
		engine:        engine,
		dispatcher:    dispatcher,
		campaignLogic: logic.NewCampaignLogic(db),
	}
}

// CreateCampaign 创建活动
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if !common.IsHexAddress(req.Creator) {
		ErrorResponse(c, http.StatusBadRequest, "无效的创建者地址")
		return
	}

	goal, ok := new(big.Int).SetString(req.FundingGoal, 10)
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "无效的目标金额")
		return
	}

	category, ok := parseCategory(req.Category)
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动类别")
		return
	}

	// 调用核心引擎创建活动
	id, evt, err := h.engine.CreateCampaign(
		common.HexToAddress(req.Creator), req.Title, goal, req.DurationDays, category)
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}
	h.dispatcher.Dispatch(evt)

	snapshot, err := h.engine.GetCampaign(id)
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "活动创建成功", gin.H{
		"campaign": ToCampaignResponse(snapshot),
	})
}

// parseCategory 接受类别名称或数字下标
func parseCategory(s string) (funding.Category, bool) {
	if category, ok := funding.ParseCategory(s); ok {
		return category, true
	}
	if n, err := strconv.ParseUint(s, 10, 8); err == nil {
		return funding.Category(n), true
	}
	return 0, false
}

// GetCampaigns 获取活动列表
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	status := c.Query("status")
	category := c.Query("category")
	creator := c.Query("creator")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	// 调用logic层获取活动列表
	campaigns, total, err := h.campaignLogic.GetCampaigns(status, category, creator, page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取活动列表成功", gin.H{
		"campaigns":  ToCampaignModelResponseList(campaigns),
		"pagination": NewPagination(page, pageSize, total),
	})
}

// GetCampaign 获取活动详情，直接读引擎快照
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	snapshot, err := h.engine.GetCampaign(id)
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取活动详情成功", gin.H{
		"campaign": ToCampaignResponse(snapshot),
	})
}

// FinalizeCampaign 定案活动
func (h *CampaignHandler) FinalizeCampaign(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	var req FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if !common.IsHexAddress(req.Caller) {
		ErrorResponse(c, http.StatusBadRequest, "无效的调用者地址")
		return
	}

	evt, err := h.engine.FinalizeCampaign(id, common.HexToAddress(req.Caller))
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}
	h.dispatcher.Dispatch(evt)

	SuccessResponse(c, http.StatusOK, "活动定案成功", gin.H{
		"campaignId":  evt.ID,
		"totalRaised": evt.TotalRaised.String(),
	})
}

// GetCampaignStats 获取活动统计信息
func (h *CampaignHandler) GetCampaignStats(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	stats, err := h.campaignLogic.GetCampaignStats(id)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取活动统计信息成功", gin.H{"stats": stats})
}

// GetAllCampaignStats 获取全局统计信息
func (h *CampaignHandler) GetAllCampaignStats(c *gin.Context) {
	stats, err := h.campaignLogic.GetAllCampaignStats()
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取全局统计信息成功", gin.H{"stats": stats})
}
