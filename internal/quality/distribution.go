package quality

import (
	"sort"

	"github.com/noah-isme/academic-quality-api/internal/models"
)

var gpaBuckets = []models.GPABucket{
	{Label: "3.5-4.0", Min: 3.5, Max: 4.0},
	{Label: "3.0-3.5", Min: 3.0, Max: 3.5},
	{Label: "2.5-3.0", Min: 2.5, Max: 3.0},
	{Label: "2.0-2.5", Min: 2.0, Max: 2.5},
	{Label: "0.0-2.0", Min: 0, Max: 2.0},
}

// ComputeDistribution counts students per status, GPA bucket and department.
// Out-of-range GPAs fall into the nearest edge bucket.
func ComputeDistribution(students []models.Student) models.StudentDistribution {
	statusCounts := make(map[models.StudentStatus]int, len(models.StudentStatuses))
	deptCounts := make(map[string]int)
	buckets := make([]models.GPABucket, len(gpaBuckets))
	copy(buckets, gpaBuckets)

	for _, s := range students {
		statusCounts[s.Status]++
		deptCounts[s.Department]++
		buckets[bucketIndex(finite(s.GPA))].Count++
	}

	byStatus := make([]models.StatusCount, 0, len(models.StudentStatuses))
	for _, status := range models.StudentStatuses {
		byStatus = append(byStatus, models.StatusCount{Status: status, Count: statusCounts[status]})
	}

	byDept := make([]models.DepartmentCount, 0, len(deptCounts))
	for name, count := range deptCounts {
		byDept = append(byDept, models.DepartmentCount{Department: name, Count: count})
	}
	sort.Slice(byDept, func(i, j int) bool { return byDept[i].Department < byDept[j].Department })

	return models.StudentDistribution{ByStatus: byStatus, GPABuckets: buckets, ByDepartment: byDept}
}

func bucketIndex(gpa float64) int {
	for i, b := range gpaBuckets {
		if gpa >= b.Min {
			return i
		}
	}
	return len(gpaBuckets) - 1
}
