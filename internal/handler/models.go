package handler

import (
	"time"

	"github.com/blues/edufund/internal/funding"
	"github.com/blues/edufund/internal/model"
)

// 请求模型

// CreateCampaignRequest 创建活动请求
type CreateCampaignRequest struct {
	Creator      string `json:"creator" binding:"required"`
	Title        string `json:"title" binding:"required"`
	FundingGoal  string `json:"fundingGoal" binding:"required"`
	DurationDays int64  `json:"durationDays" binding:"required"`
	Category     string `json:"category" binding:"required"`
}

// ContributeRequest 贡献请求
type ContributeRequest struct {
	Contributor string `json:"contributor" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
}

// FinalizeRequest 定案请求
type FinalizeRequest struct {
	Caller string `json:"caller" binding:"required"`
}

// 响应模型，金额一律为十进制字符串

// CampaignResponse 活动响应模型
type CampaignResponse struct {
	ID          uint64 `json:"id"`
	Creator     string `json:"creator"`
	Title       string `json:"title"`
	FundingGoal string `json:"fundingGoal"`
	TotalRaised string `json:"totalRaised"`
	Deadline    int64  `json:"deadline"`
	Finalized   bool   `json:"finalized"`
	Category    string `json:"category"`
	Status      string `json:"status,omitempty"`
}

// ToCampaignResponse 引擎快照转响应
func ToCampaignResponse(c funding.Campaign) CampaignResponse {
	return CampaignResponse{
		ID:          c.ID,
		Creator:     c.Creator.Hex(),
		Title:       c.Title,
		FundingGoal: c.FundingGoal.String(),
		TotalRaised: c.TotalRaised.String(),
		Deadline:    c.Deadline,
		Finalized:   c.Finalized,
		Category:    c.Category.String(),
	}
}

// ToCampaignModelResponse 读模型转响应
func ToCampaignModelResponse(m model.CampaignModel) CampaignResponse {
	return CampaignResponse{
		ID:          uint64(m.CampaignId),
		Creator:     m.CreatorAddress,
		Title:       m.Title,
		FundingGoal: m.FundingGoal.String(),
		TotalRaised: m.TotalRaised.String(),
		Deadline:    m.Deadline.Unix(),
		Finalized:   m.Finalized,
		Category:    m.Category,
		Status:      string(m.Status),
	}
}

// ToCampaignModelResponseList 读模型列表转响应
func ToCampaignModelResponseList(ms []model.CampaignModel) []CampaignResponse {
	out := make([]CampaignResponse, len(ms))
	for i, m := range ms {
		out[i] = ToCampaignModelResponse(m)
	}
	return out
}

// ContributeRecordResponse 贡献记录响应模型
type ContributeRecordResponse struct {
	ID            int64     `json:"id"`
	CampaignID    int64     `json:"campaignId"`
	Address       string    `json:"address"`
	Amount        string    `json:"amount"`
	CreatorShare  string    `json:"creatorShare"`
	PlatformShare string    `json:"platformShare"`
	RewardMinted  string    `json:"rewardMinted"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToContributeRecordResponseList 贡献记录列表转响应
func ToContributeRecordResponseList(records []model.ContributeRecordModel) []ContributeRecordResponse {
	out := make([]ContributeRecordResponse, len(records))
	for i, r := range records {
		out[i] = ContributeRecordResponse{
			ID:            r.Id,
			CampaignID:    r.CampaignId,
			Address:       r.Address,
			Amount:        r.Amount.String(),
			CreatorShare:  r.CreatorShare.String(),
			PlatformShare: r.PlatformShare.String(),
			RewardMinted:  r.RewardMinted.String(),
			CreatedAt:     r.CreatedAt,
		}
	}
	return out
}

// PortfolioItemResponse 账户持仓条目
type PortfolioItemResponse struct {
	CampaignID uint64 `json:"campaignId"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	Finalized  bool   `json:"finalized"`
	Amount     string `json:"amount"`
}

// 分页信息结构
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// NewPagination 计算分页信息
func NewPagination(page, pageSize int, total int64) Pagination {
	return Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
}
