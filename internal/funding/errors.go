package funding

// Kind 错误分类，客户端依赖该分类做分支处理
type Kind int

const (
	KindValidation Kind = iota // 参数校验失败
	KindUnknownCampaign        // 活动不存在
	KindCampaignEnded          // 活动已结束（已截止或已定案）
	KindUnauthorized           // 非创建者调用
	KindDeadlineNotReached     // 未到截止时间
	KindAlreadyFinalized       // 重复定案
	KindTransferFailed         // 出账失败
	KindReentrancy             // 转账期间的重入调用
)

// Error 带分类的核心错误
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is 按分类匹配，支持 errors.Is(err, funding.ErrCampaignEnded) 形式的判断
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Message != "" && t.Message != e.Message {
		return false
	}
	return t.Kind == e.Kind
}

// 分类哨兵，仅用于 errors.Is 匹配
var (
	ErrValidation         = &Error{Kind: KindValidation}
	ErrUnknownCampaign    = &Error{Kind: KindUnknownCampaign}
	ErrCampaignEnded      = &Error{Kind: KindCampaignEnded}
	ErrUnauthorized       = &Error{Kind: KindUnauthorized}
	ErrDeadlineNotReached = &Error{Kind: KindDeadlineNotReached}
	ErrAlreadyFinalized   = &Error{Kind: KindAlreadyFinalized}
	ErrTransferFailed     = &Error{Kind: KindTransferFailed}
	ErrReentrancy         = &Error{Kind: KindReentrancy}
)

// 具体错误，消息与链上合约的 revert 字符串保持一致，前端按原文匹配
var (
	errGoalNotPositive         = &Error{Kind: KindValidation, Message: "Funding goal must be > 0"}
	errDurationNotPositive     = &Error{Kind: KindValidation, Message: "Duration must be > 0"}
	errInvalidCategory         = &Error{Kind: KindValidation, Message: "Invalid category"}
	errContributionNotPositive = &Error{Kind: KindValidation, Message: "Contribution must be > 0"}
	errCampaignNotFound        = &Error{Kind: KindUnknownCampaign, Message: "Campaign does not exist"}
	errDeadlinePassed          = &Error{Kind: KindCampaignEnded, Message: "Campaign deadline passed"}
	errCampaignFinalized       = &Error{Kind: KindCampaignEnded, Message: "Campaign already finalized"}
	errNotCreator              = &Error{Kind: KindUnauthorized, Message: "Only creator can finalize"}
	errDeadlineNotReached      = &Error{Kind: KindDeadlineNotReached, Message: "Deadline not reached"}
	errAlreadyFinalized        = &Error{Kind: KindAlreadyFinalized, Message: "Already finalized"}
	errReentrantCall           = &Error{Kind: KindReentrancy, Message: "Reentrant call"}
)
