package services

import (
	"sort"
	"time"

	"github.com/anushahashmi071/CareGroup-sub001/internal/aggregation"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/presentation"
)

// statusCounts lists every appointment status, including empty ones, with
// its share of facts.
func statusCounts(facts []entities.AppointmentFact) []entities.StatusCount {
	counts := aggregation.CountBy(facts, func(f entities.AppointmentFact) entities.AppointmentStatus { return f.Status })
	out := make([]entities.StatusCount, 0, len(entities.AppointmentStatuses))
	for _, st := range entities.AppointmentStatuses {
		out = append(out, entities.StatusCount{
			Status:  st,
			Count:   counts[st],
			Percent: presentation.Share(counts[st], len(facts)),
			Badge:   presentation.StatusLabel(string(st)),
		})
	}
	return out
}

// completionRate is the percentage of facts that were completed.
func completionRate(facts []entities.AppointmentFact) float64 {
	completed := 0
	for _, f := range facts {
		if f.Status == entities.AppointmentStatusCompleted {
			completed++
		}
	}
	return aggregation.Round(aggregation.PercentOf(float64(completed), float64(len(facts))), 1)
}

// monthlyTrend counts facts in each of the months keys, oldest first.
func monthlyTrend(facts []entities.AppointmentFact, keys []string) ([]entities.MonthCount, []int) {
	counts := aggregation.CountBy(facts, func(f entities.AppointmentFact) string { return aggregation.MonthKey(f.Date.Time) })
	series := aggregation.SeriesFor(counts, keys)
	months := make([]entities.MonthCount, len(keys))
	for i, k := range keys {
		label := k
		if t, err := time.Parse("2006-01", k); err == nil {
			label = t.Format("Jan 2006")
		}
		months[i] = entities.MonthCount{Month: k, Label: label, Count: series[i]}
	}
	return months, series
}

// doctorLoads ranks doctors by appointment count.
func doctorLoads(facts []entities.AppointmentFact, n int) []entities.DoctorLoad {
	counts := aggregation.CountBy(facts, func(f entities.AppointmentFact) int64 { return f.DoctorID })
	seen := make(map[int64]bool, len(counts))
	loads := make([]entities.DoctorLoad, 0, len(counts))
	// facts are oldest first; first appearance keeps ties deterministic
	for _, f := range facts {
		if seen[f.DoctorID] {
			continue
		}
		seen[f.DoctorID] = true
		loads = append(loads, entities.DoctorLoad{
			DoctorID:           f.DoctorID,
			FullName:           f.DoctorName,
			SpecializationName: f.SpecializationName,
			Appointments:       counts[f.DoctorID],
			Initials:           presentation.Initials(f.DoctorName),
		})
	}
	sort.SliceStable(loads, func(i, j int) bool { return loads[i].DoctorID < loads[j].DoctorID })
	return aggregation.TopN(loads, func(l entities.DoctorLoad) int { return l.Appointments }, n)
}

// groupBars counts facts per label and scales them into bars, largest first.
func groupBars(facts []entities.AppointmentFact, labelFn func(entities.AppointmentFact) string) []presentation.Bar {
	counts := aggregation.CountBy(facts, labelFn)
	sorted := aggregation.SortedCounts(counts, func(a, b string) bool { return a < b })
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Count > sorted[j].Count })

	labels := make([]string, len(sorted))
	values := make([]int, len(sorted))
	for i, kc := range sorted {
		labels[i] = kc.Key
		if labels[i] == "" {
			labels[i] = presentation.NotAvailable
		}
		values[i] = kc.Count
	}
	return presentation.Bars(labels, values)
}

// cards formats appointment views for dashboard lists.
func cards(views []*entities.AppointmentView, f presentation.Formatter) []entities.AppointmentCard {
	out := make([]entities.AppointmentCard, 0, len(views))
	for _, v := range views {
		out = append(out, entities.AppointmentCard{
			AppointmentID:      v.ID,
			PatientName:        v.PatientName,
			PatientInitials:    presentation.Initials(v.PatientName),
			DoctorName:         v.DoctorName,
			SpecializationName: v.SpecializationName,
			Date:               f.FormatDateValue(v.Date.Time),
			Time:               f.FormatTime(v.Time),
			Badge:              presentation.StatusLabel(string(v.Status)),
		})
	}
	return out
}

func distinctPatients(facts []entities.AppointmentFact) int {
	return len(aggregation.CountBy(facts, func(f entities.AppointmentFact) int64 { return f.PatientID }))
}
