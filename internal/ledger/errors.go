package ledger

import "errors"

// 账本操作错误，全部为不可重试错误，调用方需修正输入或等待时间条件
var (
	// ErrInvalidGoal 目标金额必须大于0
	ErrInvalidGoal = errors.New("目标金额必须大于0")
	// ErrInvalidDeadline 截止时间必须晚于当前时间（或当前截止时间）
	ErrInvalidDeadline = errors.New("截止时间无效")
	// ErrInvalidBeneficiary 受益人地址不能为空
	ErrInvalidBeneficiary = errors.New("受益人地址不能为空")
	// ErrCampaignEnded 众筹已结束
	ErrCampaignEnded = errors.New("众筹已结束")
	// ErrStillOngoing 众筹尚未结束
	ErrStillOngoing = errors.New("众筹尚未结束")
	// ErrContributionTooSmall 出资金额低于最低限额
	ErrContributionTooSmall = errors.New("出资金额低于最低限额")
	// ErrUnauthorized 仅受益人可以执行此操作
	ErrUnauthorized = errors.New("仅受益人可以执行此操作")
	// ErrGoalNotMet 未达到目标金额
	ErrGoalNotMet = errors.New("未达到目标金额")
	// ErrGoalMet 已达到目标金额，不能退款
	ErrGoalMet = errors.New("已达到目标金额")
	// ErrNothingToRefund 没有可退款的出资
	ErrNothingToRefund = errors.New("没有可退款的出资")
	// ErrAlreadyExtended 截止时间只能延长一次
	ErrAlreadyExtended = errors.New("截止时间只能延长一次")
	// ErrTransferFailed 向受益人转账失败，状态已回滚
	ErrTransferFailed = errors.New("向受益人转账失败")
	// ErrRefundFailed 退款转账失败，状态已回滚
	ErrRefundFailed = errors.New("退款转账失败")
	// ErrReentrantCall 检测到重入调用
	ErrReentrantCall = errors.New("检测到重入调用")
)
