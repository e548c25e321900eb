package update_availability

import (
	"fmt"
	"sort"

	"github.com/shoemant/strata-web/internal/domain"
)

// materializeSlots разворачивает набор окон доступности в детерминированную
// последовательность слотов, упорядоченную по (weekday, start_time)
//
// Для каждого окна слоты генерируются шагом interval от начала окна;
// хвостовой слот, который вышел бы за конец окна, отбрасывается (не
// округляется). Пересекающиеся окна могут породить слоты с одинаковым
// естественным ключом (weekday, start_time) - такие слоты схлопываются в
// один, побеждает окно, идущее раньше в запросе. Функция чистая: повторный
// вызов на тех же входных данных даёт идентичный набор, что позволяет
// безопасно перегенерировать слоты при каждом изменении окон
func materializeSlots(resource *domain.Resource, windows []WindowInput) ([]*domain.TimeSlot, error) {
	capacity := resource.SlotCapacity()
	slots := make([]*domain.TimeSlot, 0)

	for _, w := range windows {
		current := w.StartTime

		for current.IsBefore(w.EndTime) {
			slotEnd, err := current.AddMinutes(w.IntervalMinutes)
			if err != nil {
				// Слот вышел за пределы суток - дальше шагать некуда
				break
			}
			if slotEnd.IsAfter(w.EndTime) {
				break
			}

			slots = append(slots, &domain.TimeSlot{
				ResourceID: resource.ID,
				Weekday:    w.Weekday,
				StartTime:  current,
				EndTime:    slotEnd,
				Capacity:   capacity,
				TimeLabel:  current.String(),
			})

			current = slotEnd
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Weekday != slots[j].Weekday {
			return slots[i].Weekday < slots[j].Weekday
		}
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})

	// Схлопываем дубликаты естественного ключа от пересекающихся окон;
	// стабильная сортировка сохраняет порядок окон запроса, так что
	// остаётся слот первого окна
	seen := make(map[domain.SlotKey]struct{}, len(slots))
	deduped := slots[:0]
	for _, s := range slots {
		key := s.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, s)
	}

	return deduped, nil
}

// configWarnings возвращает предупреждения о спорной конфигурации окон
//
// Пересекающиеся окна одного дня недели легальны, но покрытое обоими окнами
// время публикуется одним слотом с вместимостью ресурса - об этом
// предупреждаем менеджера при сохранении, а не отклоняем конфигурацию
func configWarnings(windows []WindowInput) []string {
	warnings := make([]string, 0)

	for i := range windows {
		a := &domain.AvailabilityWindow{
			Weekday:   windows[i].Weekday,
			StartTime: windows[i].StartTime,
			EndTime:   windows[i].EndTime,
		}

		for j := i + 1; j < len(windows); j++ {
			b := &domain.AvailabilityWindow{
				Weekday:   windows[j].Weekday,
				StartTime: windows[j].StartTime,
				EndTime:   windows[j].EndTime,
			}

			if a.Overlaps(b) {
				warnings = append(warnings, fmt.Sprintf(
					"windows %s-%s and %s-%s overlap on weekday %d: slots sharing a start time are published once",
					windows[i].StartTime, windows[i].EndTime,
					windows[j].StartTime, windows[j].EndTime,
					windows[i].Weekday))
			}
		}

		span := windowSpanMinutes(&windows[i])
		if span > 0 && span%windows[i].IntervalMinutes != 0 {
			warnings = append(warnings, fmt.Sprintf(
				"window %s-%s is not evenly tiled by %d-minute slots: the trailing partial slot is dropped",
				windows[i].StartTime, windows[i].EndTime, windows[i].IntervalMinutes))
		}
	}

	return warnings
}

func windowSpanMinutes(w *WindowInput) int {
	start, err := w.StartTime.Minutes()
	if err != nil {
		return 0
	}
	end, err := w.EndTime.Minutes()
	if err != nil {
		return 0
	}
	return end - start
}
