// Package workflow — единственная копия таблицы переходов workflow
// статусов правила. Раньше таблица жила в двух модулях фронтенда и
// успела разъехаться; теперь источник один.
package workflow

type Status string

const (
	NotStarted      Status = "not_started"
	InfoRequired    Status = "info_required"
	InProgress      Status = "in_progress"
	Stopped         Status = "stopped"
	Returned        Status = "returned"
	ReadyForTesting Status = "ready_for_testing"
	Tested          Status = "tested"
	Deployed        Status = "deployed"
)

// Spec — описание статуса: отображение и требования к переходу в него.
type Spec struct {
	Label            string
	LabelRU          string
	Icon             string
	Color            string
	RequiresComment  bool
	RequiresAssignee bool
	Next             []Status
}

var specs = map[Status]Spec{
	NotStarted: {
		Label:   "Not started",
		LabelRU: "Не взято в работу",
		Icon:    "fa-circle",
		Color:   "#6b7280",
		Next:    []Status{InfoRequired, InProgress},
	},
	InfoRequired: {
		Label:           "Info required",
		LabelRU:         "Требуется информация",
		Icon:            "fa-question-circle",
		Color:           "#f59e0b",
		RequiresComment: true,
		Next:            []Status{InProgress, NotStarted},
	},
	InProgress: {
		Label:            "In progress",
		LabelRU:          "В работе",
		Icon:             "fa-spinner",
		Color:            "#3b82f6",
		RequiresAssignee: true,
		Next:             []Status{Stopped, ReadyForTesting, Returned},
	},
	Stopped: {
		Label:           "Stopped",
		LabelRU:         "Остановлено",
		Icon:            "fa-stop-circle",
		Color:           "#ef4444",
		RequiresComment: true,
		Next:            []Status{InProgress, NotStarted},
	},
	Returned: {
		Label:           "Returned",
		LabelRU:         "Возвращено",
		Icon:            "fa-undo-alt",
		Color:           "#ec4899",
		RequiresComment: true,
		Next:            []Status{InProgress, InfoRequired},
	},
	ReadyForTesting: {
		Label:   "Ready for testing",
		LabelRU: "Готово к тестированию",
		Icon:    "fa-check-circle",
		Color:   "#8b5cf6",
		Next:    []Status{Tested, Returned},
	},
	Tested: {
		Label:   "Tested",
		LabelRU: "Протестировано",
		Icon:    "fa-vial",
		Color:   "#10b981",
		Next:    []Status{Deployed, Returned},
	},
	Deployed: {
		Label:           "Deployed",
		LabelRU:         "Выгружено в Git",
		Icon:            "fa-code-branch",
		Color:           "#0f766e",
		RequiresComment: true,
		Next:            nil, // терминальный
	},
}

// порядок для выпадающих списков и тестов
var ordered = []Status{
	NotStarted, InfoRequired, InProgress, Stopped,
	Returned, ReadyForTesting, Tested, Deployed,
}

// All — все статусы в каноничном порядке.
func All() []Status {
	out := make([]Status, len(ordered))
	copy(out, ordered)
	return out
}

// Info — описание статуса; ok == false для неизвестного.
func Info(s Status) (Spec, bool) {
	spec, ok := specs[s]
	return spec, ok
}

// AllowedNext — разрешённые следующие статусы. Для неизвестного
// статуса — пусто.
func AllowedNext(s Status) []Status {
	spec, ok := specs[s]
	if !ok {
		return nil
	}
	out := make([]Status, len(spec.Next))
	copy(out, spec.Next)
	return out
}

// CanTransition — допустим ли переход from → to.
func CanTransition(from, to Status) bool {
	spec, ok := specs[from]
	if !ok {
		return false
	}
	for _, n := range spec.Next {
		if n == to {
			return true
		}
	}
	return false
}
