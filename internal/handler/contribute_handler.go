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

// ContributeHandler 贡献处理器
type ContributeHandler struct {
	engine          *funding.Engine
	dispatcher      *event.Dispatcher
	contributeLogic *logic.ContributeRecordLogic
}

// NewContributeHandler 创建贡献处理器
func NewContributeHandler(engine *funding.Engine, dispatcher *event.Dispatcher, db *gorm.DB) *ContributeHandler {
	return &ContributeHandler{
		engine:          engine,
		dispatcher:      dispatcher,
		contributeLogic: logic.NewContributeRecordLogic(db),
	}
}

// Contribute 向活动贡献资金
func (h *ContributeHandler) Contribute(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if !common.IsHexAddress(req.Contributor) {
		ErrorResponse(c, http.StatusBadRequest, "无效的贡献者地址")
		return
	}
	amount, ok := new(big.Int).SetString(req.Amount, 10)
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "无效的贡献金额")
		return
	}

	// 调用核心引擎结算贡献
	evt, err := h.engine.Contribute(id, common.HexToAddress(req.Contributor), amount)
	if err != nil {
		EngineErrorResponse(c, err)
		return
	}
	h.dispatcher.Dispatch(evt)

	SuccessResponse(c, http.StatusCreated, "贡献成功", gin.H{
		"campaignId":  evt.ID,
		"contributor": evt.Contributor.Hex(),
		"amount":      evt.Amount.String(),
	})
}

// GetCampaignContributeRecords 获取活动贡献记录
func (h *ContributeHandler) GetCampaignContributeRecords(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	// 调用logic层获取活动贡献记录
	records, total, err := h.contributeLogic.GetCampaignContributeRecords(id, page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取活动贡献记录成功", gin.H{
		"records":    ToContributeRecordResponseList(records),
		"pagination": NewPagination(page, pageSize, total),
	})
}

// GetContribution 获取某账户对某活动的累计贡献
func (h *ContributeHandler) GetContribution(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}
	address := c.Param("address")
	if !common.IsHexAddress(address) {
		ErrorResponse(c, http.StatusBadRequest, "无效的账户地址")
		return
	}

	amount := h.engine.GetContribution(id, common.HexToAddress(address))

	SuccessResponse(c, http.StatusOK, "获取累计贡献成功", gin.H{
		"campaignId": id,
		"address":    common.HexToAddress(address).Hex(),
		"amount":     amount.String(),
	})
}
