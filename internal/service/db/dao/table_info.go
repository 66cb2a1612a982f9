package dao

const (
	// CollectionUser 存储由身份服务同步的用户的表。
	CollectionUser = "users"

	// CollectionInterview 存储面试信息的表。
	CollectionInterview = "interviews"

	// CollectionComment 存储面试评价的表。
	CollectionComment = "comments"

	// CollectionTask 定时任务结果的表。
	CollectionTask = "task_results"
)
