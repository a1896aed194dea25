package handler

import (
	"net/http"

	"github.com/blues/edufund/internal/funding"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// AccountHandler 账户查询处理器
type AccountHandler struct {
	engine *funding.Engine
}

// NewAccountHandler 创建账户查询处理器
func NewAccountHandler(engine *funding.Engine) *AccountHandler {
	return &AccountHandler{engine: engine}
}

// GetPortfolio 获取账户的全部贡献持仓
// 基于贡献者索引聚合，无需扫描全部活动
func (h *AccountHandler) GetPortfolio(c *gin.Context) {
	address := c.Param("address")
	if !common.IsHexAddress(address) {
		ErrorResponse(c, http.StatusBadRequest, "无效的账户地址")
		return
	}
	account := common.HexToAddress(address)

	ids, amounts := h.engine.GetContributions(account)
	items := make([]PortfolioItemResponse, 0, len(ids))
	for i, id := range ids {
		item := PortfolioItemResponse{
			CampaignID: id,
			Amount:     amounts[i].String(),
		}
		if snapshot, err := h.engine.GetCampaign(id); err == nil {
			item.Title = snapshot.Title
			item.Category = snapshot.Category.String()
			item.Finalized = snapshot.Finalized
		}
		items = append(items, item)
	}

	SuccessResponse(c, http.StatusOK, "获取账户持仓成功", gin.H{
		"address":   account.Hex(),
		"portfolio": items,
	})
}

// GetRewardBalance 获取账户的奖励代币余额
func (h *AccountHandler) GetRewardBalance(c *gin.Context) {
	address := c.Param("address")
	if !common.IsHexAddress(address) {
		ErrorResponse(c, http.StatusBadRequest, "无效的账户地址")
		return
	}
	account := common.HexToAddress(address)

	balance := h.engine.Token().BalanceOf(account)

	SuccessResponse(c, http.StatusOK, "获取奖励余额成功", gin.H{
		"address": account.Hex(),
		"balance": balance.String(),
	})
}
