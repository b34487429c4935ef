package models

// Dashboard report shapes. These are computed on demand, never stored.

type CourseEngagement struct {
	CourseID         uint    `json:"courseId"`
	Title            string  `json:"title"`
	EnrolledMembers  int64   `json:"enrolledMembers"`
	CompletedMembers int64   `json:"completedMembers"`
	AvgProgress      float64 `json:"avgProgress"`
	QuizSubmissions  int64   `json:"quizSubmissions"`
	AvgQuizScore     float64 `json:"avgQuizScore"`
}

type PlatformSummary struct {
	TotalMembers    int64 `json:"totalMembers"`
	ActiveMembers   int64 `json:"activeMembers"`
	TotalLevels     int64 `json:"totalLevels"`
	TotalCourses    int64 `json:"totalCourses"`
	TotalChapters   int64 `json:"totalChapters"`
	QuizSubmissions int64 `json:"quizSubmissions"`
}

type MemberOverview struct {
	CoursesStarted   int64   `json:"coursesStarted"`
	CoursesCompleted int     `json:"coursesCompleted"`
	ChaptersWatched  int64   `json:"chaptersWatched"`
	QuizzesTaken     int64   `json:"quizzesTaken"`
	AverageScore     float64 `json:"averageScore"`
}
