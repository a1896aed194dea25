package funding

// CampaignRegistry 活动登记表，顺序分配 ID，记录只增不删
type CampaignRegistry struct {
	campaigns []*Campaign
}

// newCampaignRegistry 创建活动登记表
func newCampaignRegistry() *CampaignRegistry {
	return &CampaignRegistry{}
}

// add 追加活动并分配 ID
func (r *CampaignRegistry) add(c *Campaign) uint64 {
	c.ID = uint64(len(r.campaigns))
	r.campaigns = append(r.campaigns, c)
	return c.ID
}

// get 按 ID 获取活动
func (r *CampaignRegistry) get(id uint64) (*Campaign, error) {
	if id >= uint64(len(r.campaigns)) {
		return nil, errCampaignNotFound
	}
	return r.campaigns[id], nil
}

// count 当前活动数量
func (r *CampaignRegistry) count() uint64 {
	return uint64(len(r.campaigns))
}
