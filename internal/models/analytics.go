package models

import "time"

// Grade is a letter grade derived from a 0-100 quality score.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// RiskLevel is a categorical risk label.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// RiskType names the concern a risk rule watches.
type RiskType string

const (
	RiskTypeAcademic  RiskType = "Academic"
	RiskTypeRetention RiskType = "Retention"
	RiskTypeStaffing  RiskType = "Staffing"
	RiskTypeResource  RiskType = "Resource"
)

// QualityMetrics is the institution-wide quality snapshot.
type QualityMetrics struct {
	Overall      int `json:"overall"`
	Academic     int `json:"academic"`
	Teaching     int `json:"teaching"`
	Operational  int `json:"operational"`
	Satisfaction int `json:"satisfaction"`

	AvgGPA              float64 `json:"avg_gpa"`
	AvgTeacherRating    float64 `json:"avg_teacher_rating"`
	StudentTeacherRatio float64 `json:"student_teacher_ratio"`
	RetentionRate       float64 `json:"retention_rate"`
	UtilizationRate     float64 `json:"utilization_rate"`

	TotalStudents  int `json:"total_students"`
	ActiveStudents int `json:"active_students"`
	TotalTeachers  int `json:"total_teachers"`
	TotalCourses   int `json:"total_courses"`

	Grade     Grade     `json:"grade"`
	RiskLevel RiskLevel `json:"risk_level"`
}

// DepartmentQuality is the per-department rollup of the quality metrics.
type DepartmentQuality struct {
	Department     string `json:"department"`
	StudentCount   int    `json:"student_count"`
	ActiveStudents int    `json:"active_students"`
	TeacherCount   int    `json:"teacher_count"`
	CourseCount    int    `json:"course_count"`

	AvgGPA              float64 `json:"avg_gpa"`
	AvgTeacherRating    float64 `json:"avg_teacher_rating"`
	StudentTeacherRatio float64 `json:"student_teacher_ratio"`
	RetentionRate       float64 `json:"retention_rate"`
	UtilizationRate     float64 `json:"utilization_rate"`

	AcademicScore    int `json:"academic_score"`
	TeachingScore    int `json:"teaching_score"`
	RetentionScore   int `json:"retention_score"`
	UtilizationScore int `json:"utilization_score"`

	QualityScore int       `json:"quality_score"`
	QualityGrade Grade     `json:"quality_grade"`
	RiskLevel    RiskLevel `json:"risk_level"`
}

// RiskAssessment is one triggered risk rule with the departments it matched.
type RiskAssessment struct {
	Type           RiskType  `json:"type"`
	Level          RiskLevel `json:"level"`
	Departments    []string  `json:"departments"`
	Description    string    `json:"description"`
	Recommendation string    `json:"recommendation"`
}

// TrendPoint is one month of the performance trend.
type TrendPoint struct {
	Month        string `json:"month"`
	Overall      int    `json:"overall"`
	Academic     int    `json:"academic"`
	Teaching     int    `json:"teaching"`
	Operational  int    `json:"operational"`
	Satisfaction int    `json:"satisfaction"`
}

// PerformanceTrend is a monthly series. Synthetic series are generated, not historical.
type PerformanceTrend struct {
	Synthetic bool         `json:"synthetic"`
	Points    []TrendPoint `json:"points"`
}

// StatusCount counts students in one status.
type StatusCount struct {
	Status StudentStatus `json:"status"`
	Count  int           `json:"count"`
}

// GPABucket counts students within a GPA range [Min, Max).
type GPABucket struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// DepartmentCount is a department headcount.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

// StudentDistribution summarises the student population.
type StudentDistribution struct {
	ByStatus     []StatusCount     `json:"by_status"`
	GPABuckets   []GPABucket       `json:"gpa_buckets"`
	ByDepartment []DepartmentCount `json:"by_department"`
}

// ValidationIssue reports a record whose values the quality engine cannot trust.
type ValidationIssue struct {
	Entity  string `json:"entity"`
	ID      string `json:"id"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// QualityReport is the integrated analytics view served to the dashboard.
type QualityReport struct {
	Metrics        QualityMetrics      `json:"metrics"`
	Departments    []DepartmentQuality `json:"departments"`
	Risks          []RiskAssessment    `json:"risks"`
	Trend          PerformanceTrend    `json:"trend"`
	Distribution   StudentDistribution `json:"distribution"`
	Issues         []ValidationIssue   `json:"issues"`
	DatasetVersion uint64              `json:"dataset_version"`
	GeneratedAt    time.Time           `json:"generated_at"`
}

// AnalyticsSystemMetrics represents system level analytics captured from instrumentation.
type AnalyticsSystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	Computations             uint64    `json:"computations"`
	AverageComputationMs     float64   `json:"average_computation_ms"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
