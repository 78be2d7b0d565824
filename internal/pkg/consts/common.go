package consts

// Canal binlog tables that feed the dashboard
const (
	TablePosts          = "posts"
	TablePostAnalytics  = "post_analytics"
	TableSocialAccounts = "social_accounts"
)
