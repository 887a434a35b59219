package service

import (
	"context"
	"time"

	"github.com/espaceform/formation_portal/internal/calendar"
	"github.com/espaceform/formation_portal/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Интерфейсы хранилища объявлены на стороне потребителя: конкретные
// репозитории пакета repository им удовлетворяют, тесты подставляют стабы.

type SlotRepo interface {
	Create(ctx context.Context, slot *model.ScheduleSlot) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.ScheduleSlot, error)
	ListBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]*model.ScheduleSlot, error)
	Update(ctx context.Context, slot *model.ScheduleSlot) error
	UpdateDate(ctx context.Context, id uuid.UUID, date time.Time) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type ScheduleRepo interface {
	Create(ctx context.Context, schedule *model.Schedule) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Schedule, error)
	List(ctx context.Context, formationID *uuid.UUID) ([]*model.Schedule, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ScheduleStatus) error
}

type FormationRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Formation, error)
	List(ctx context.Context) ([]*model.Formation, error)
}

type ModuleRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.FormationModule, error)
	ListByFormation(ctx context.Context, formationID uuid.UUID) ([]*model.FormationModule, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.FormationModule, error)
}

type UserRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.User, error)
	ListInstructors(ctx context.Context) ([]*model.User, error)
}

// Notifier фид изменений: после каждой мутации подписчики получают
// сигнал перечитать слоты затронутого расписания
type Notifier interface {
	Publish(ctx context.Context, scheduleID uuid.UUID)
}

type ScheduleService struct {
	scheduleRepo  ScheduleRepo
	slotRepo      SlotRepo
	formationRepo FormationRepo
	moduleRepo    ModuleRepo
	userRepo      UserRepo
	editor        *SlotEditor
	feed          Notifier
	logger        *zap.Logger
}

func NewScheduleService(
	scheduleRepo ScheduleRepo,
	slotRepo SlotRepo,
	formationRepo FormationRepo,
	moduleRepo ModuleRepo,
	userRepo UserRepo,
	feed Notifier,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		scheduleRepo:  scheduleRepo,
		slotRepo:      slotRepo,
		formationRepo: formationRepo,
		moduleRepo:    moduleRepo,
		userRepo:      userRepo,
		editor:        NewSlotEditor(),
		feed:          feed,
		logger:        logger,
	}
}

// Editor возвращает валидатор формы слота
func (s *ScheduleService) Editor() *SlotEditor {
	return s.editor
}

// CreateSchedule создаёт черновик расписания для формации
func (s *ScheduleService) CreateSchedule(ctx context.Context, formationID uuid.UUID, name, academicYear string) (*model.Schedule, error) {
	formation, err := s.formationRepo.GetByID(ctx, formationID)
	if err != nil {
		return nil, &TransportError{Op: "get formation", Err: err}
	}
	if formation == nil {
		return nil, &NotFoundError{Resource: "formation"}
	}

	if name == "" {
		return nil, &ValidationError{Message: msgRequiredFields}
	}
	if academicYear == "" {
		academicYear = formation.AcademicYear
	}

	schedule := &model.Schedule{
		FormationID:  formationID,
		Name:         name,
		AcademicYear: academicYear,
		Status:       model.ScheduleStatusDraft,
	}

	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, &TransportError{Op: "create schedule", Err: err}
	}

	s.logger.Info("Schedule created",
		zap.String("schedule_id", schedule.ID.String()),
		zap.String("formation_id", formationID.String()),
		zap.String("name", name))

	s.feed.Publish(ctx, schedule.ID)
	return schedule, nil
}

// ListSchedules получает расписания, опционально по формации
func (s *ScheduleService) ListSchedules(ctx context.Context, formationID *uuid.UUID) ([]*model.Schedule, error) {
	schedules, err := s.scheduleRepo.List(ctx, formationID)
	if err != nil {
		return nil, &TransportError{Op: "list schedules", Err: err}
	}
	return schedules, nil
}

// GetSchedule получает расписание по id
func (s *ScheduleService) GetSchedule(ctx context.Context, id uuid.UUID) (*model.Schedule, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, &TransportError{Op: "get schedule", Err: err}
	}
	if schedule == nil {
		return nil, &NotFoundError{Resource: "schedule"}
	}
	return schedule, nil
}

// PublishSchedule переводит расписание из черновика в опубликованное
func (s *ScheduleService) PublishSchedule(ctx context.Context, id uuid.UUID) error {
	schedule, err := s.GetSchedule(ctx, id)
	if err != nil {
		return err
	}

	if err := s.scheduleRepo.UpdateStatus(ctx, schedule.ID, model.ScheduleStatusPublished); err != nil {
		return &TransportError{Op: "publish schedule", Err: err}
	}

	s.feed.Publish(ctx, schedule.ID)
	return nil
}

// ListSlots получает все слоты расписания.
// Порядок детерминирован хранилищем; вызывающие всё равно сортируют
// при построении проекций.
func (s *ScheduleService) ListSlots(ctx context.Context, scheduleID uuid.UUID) ([]*model.ScheduleSlot, error) {
	if _, err := s.GetSchedule(ctx, scheduleID); err != nil {
		return nil, err
	}

	slots, err := s.slotRepo.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, &TransportError{Op: "list slots", Err: err}
	}
	return slots, nil
}

// CreateSlot проверяет вход и создаёт слот. Валидация выполняется
// до обращения к хранилищу: невалидный вход не порождает сетевых вызовов.
func (s *ScheduleService) CreateSlot(ctx context.Context, input SlotInput) (*model.ScheduleSlot, error) {
	if err := s.editor.ValidateSlot(input); err != nil {
		return nil, err
	}

	slot, err := s.buildSlot(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.slotRepo.Create(ctx, slot); err != nil {
		return nil, &TransportError{Op: "create slot", Err: err}
	}

	s.logger.Info("Slot created",
		zap.String("slot_id", slot.ID.String()),
		zap.String("schedule_id", slot.ScheduleID.String()),
		zap.Time("date", slot.Date))

	s.feed.Publish(ctx, slot.ScheduleID)
	return slot, nil
}

// CreateSlotFromForm применяет правила формы редактирования (модуль
// обязателен) и создаёт слот
func (s *ScheduleService) CreateSlotFromForm(ctx context.Context, input SlotInput) (*model.ScheduleSlot, error) {
	if err := s.editor.ValidateForm(input); err != nil {
		return nil, err
	}
	return s.CreateSlot(ctx, input)
}

// buildSlot превращает провалидированный вход в модель слота,
// подставляя цвет модуля либо формации, если цвет не задан
func (s *ScheduleService) buildSlot(ctx context.Context, input SlotInput) (*model.ScheduleSlot, error) {
	scheduleID, err := uuid.Parse(input.ScheduleID)
	if err != nil {
		return nil, &ValidationError{Message: msgRequiredFields}
	}

	schedule, err := s.GetSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	date, _ := time.Parse("2006-01-02", input.Date) // формат проверен валидатором

	slot := &model.ScheduleSlot{
		ScheduleID: scheduleID,
		Date:       date,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		Room:       input.Room,
		Color:      input.Color,
		Notes:      input.Notes,
	}

	var module *model.FormationModule
	if input.ModuleID != "" {
		moduleID, err := uuid.Parse(input.ModuleID)
		if err != nil {
			return nil, &ValidationError{Message: msgRequiredFields}
		}
		module, err = s.moduleRepo.GetByID(ctx, moduleID)
		if err != nil {
			return nil, &TransportError{Op: "get module", Err: err}
		}
		if module == nil {
			return nil, &NotFoundError{Resource: "module"}
		}
		slot.ModuleID = &moduleID
	}

	if input.InstructorID != "" {
		instructorID, err := uuid.Parse(input.InstructorID)
		if err != nil {
			return nil, &ValidationError{Message: msgRequiredFields}
		}
		slot.InstructorID = &instructorID
	}

	if slot.Color == "" {
		slot.Color = s.defaultColor(ctx, module, schedule.FormationID)
	}

	return slot, nil
}

// defaultColor цвет модуля, иначе цвет формации, иначе пусто
func (s *ScheduleService) defaultColor(ctx context.Context, module *model.FormationModule, formationID uuid.UUID) string {
	if module != nil && module.Color != "" {
		return module.Color
	}
	formation, err := s.formationRepo.GetByID(ctx, formationID)
	if err != nil || formation == nil {
		return ""
	}
	return formation.Color
}

// SlotPatch частичное обновление слота: nil-поля не трогаются
type SlotPatch struct {
	ModuleID     *string `json:"module_id"`
	InstructorID *string `json:"instructor_id"`
	Date         *string `json:"date"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	Room         *string `json:"room"`
	Color        *string `json:"color"`
	Notes        *string `json:"notes"`
}

// UpdateSlot сливает patch с текущим слотом и сохраняет результат.
// Инвариант start < end проверяется заново на слитой паре.
func (s *ScheduleService) UpdateSlot(ctx context.Context, id uuid.UUID, patch SlotPatch) (*model.ScheduleSlot, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, &TransportError{Op: "get slot", Err: err}
	}
	if slot == nil {
		return nil, &NotFoundError{Resource: "slot"}
	}

	merged := *slot
	if err := applyPatch(&merged, patch); err != nil {
		return nil, err
	}

	check := SlotInput{
		ScheduleID: merged.ScheduleID.String(),
		Date:       merged.Date.Format("2006-01-02"),
		StartTime:  merged.StartTime,
		EndTime:    merged.EndTime,
		Color:      merged.Color,
	}
	if err := s.editor.ValidateSlot(check); err != nil {
		return nil, err
	}

	if err := s.slotRepo.Update(ctx, &merged); err != nil {
		return nil, &TransportError{Op: "update slot", Err: err}
	}

	s.feed.Publish(ctx, merged.ScheduleID)
	return &merged, nil
}

func applyPatch(slot *model.ScheduleSlot, patch SlotPatch) error {
	if patch.ModuleID != nil {
		if *patch.ModuleID == "" {
			slot.ModuleID = nil
		} else {
			id, err := uuid.Parse(*patch.ModuleID)
			if err != nil {
				return &ValidationError{Message: msgRequiredFields}
			}
			slot.ModuleID = &id
		}
	}
	if patch.InstructorID != nil {
		if *patch.InstructorID == "" {
			slot.InstructorID = nil
		} else {
			id, err := uuid.Parse(*patch.InstructorID)
			if err != nil {
				return &ValidationError{Message: msgRequiredFields}
			}
			slot.InstructorID = &id
		}
	}
	if patch.Date != nil {
		date, err := time.Parse("2006-01-02", *patch.Date)
		if err != nil {
			return &ValidationError{Message: msgBadDateFormat}
		}
		slot.Date = date
	}
	if patch.StartTime != nil {
		slot.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		slot.EndTime = *patch.EndTime
	}
	if patch.Room != nil {
		slot.Room = *patch.Room
	}
	if patch.Color != nil {
		slot.Color = *patch.Color
	}
	if patch.Notes != nil {
		slot.Notes = *patch.Notes
	}
	return nil
}

// DeleteSlot удаляет слот. Идемпотентно: повторное удаление уже
// удалённого id не считается ошибкой.
func (s *ScheduleService) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		return &TransportError{Op: "get slot", Err: err}
	}
	if slot == nil {
		// Уже удалён - успех с точки зрения вызывающего
		return nil
	}

	affected, err := s.slotRepo.Delete(ctx, id)
	if err != nil {
		return &TransportError{Op: "delete slot", Err: err}
	}
	if affected == 0 {
		return nil
	}

	s.logger.Info("Slot deleted", zap.String("slot_id", id.String()))
	s.feed.Publish(ctx, slot.ScheduleID)
	return nil
}

// RescheduleSlot переносит слот на другую дату (drag-and-drop).
// Если целевая дата совпадает с текущей - нулевая операция, хранилище
// не вызывается. Меняется только дата, время и остальные поля нетронуты.
func (s *ScheduleService) RescheduleSlot(ctx context.Context, id uuid.UUID, newDate time.Time) (*model.ScheduleSlot, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, &TransportError{Op: "get slot", Err: err}
	}
	if slot == nil {
		return nil, &NotFoundError{Resource: "slot"}
	}

	if slot.SameDay(newDate) {
		return slot, nil
	}

	day := calendar.DayStart(newDate)
	if err := s.slotRepo.UpdateDate(ctx, id, day); err != nil {
		return nil, &TransportError{Op: "reschedule slot", Err: err}
	}

	slot.Date = day
	s.logger.Info("Slot rescheduled",
		zap.String("slot_id", id.String()),
		zap.Time("new_date", day))

	s.feed.Publish(ctx, slot.ScheduleID)
	return slot, nil
}

// Events строит производные события календаря для расписания,
// джойня модули, преподавателей и формацию
func (s *ScheduleService) Events(ctx context.Context, scheduleID uuid.UUID) ([]model.ScheduleEvent, error) {
	schedule, err := s.GetSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	slots, err := s.slotRepo.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, &TransportError{Op: "list slots", Err: err}
	}

	modules, instructors, err := s.lookups(ctx, slots)
	if err != nil {
		return nil, err
	}

	formation, err := s.formationRepo.GetByID(ctx, schedule.FormationID)
	if err != nil {
		return nil, &TransportError{Op: "get formation", Err: err}
	}

	return calendar.BuildEvents(slots, modules, instructors, formation), nil
}

// lookups собирает справочники модулей и преподавателей по слотам
func (s *ScheduleService) lookups(ctx context.Context, slots []*model.ScheduleSlot) (map[uuid.UUID]*model.FormationModule, map[uuid.UUID]*model.User, error) {
	moduleIDsSeen := make(map[uuid.UUID]bool)
	userIDsSeen := make(map[uuid.UUID]bool)
	for _, slot := range slots {
		if slot.ModuleID != nil {
			moduleIDsSeen[*slot.ModuleID] = true
		}
		if slot.InstructorID != nil {
			userIDsSeen[*slot.InstructorID] = true
		}
	}

	moduleIDs := make([]uuid.UUID, 0, len(moduleIDsSeen))
	for id := range moduleIDsSeen {
		moduleIDs = append(moduleIDs, id)
	}
	userIDs := make([]uuid.UUID, 0, len(userIDsSeen))
	for id := range userIDsSeen {
		userIDs = append(userIDs, id)
	}

	modules := make(map[uuid.UUID]*model.FormationModule)
	if len(moduleIDs) > 0 {
		list, err := s.moduleRepo.GetByIDs(ctx, moduleIDs)
		if err != nil {
			return nil, nil, &TransportError{Op: "get modules", Err: err}
		}
		for _, m := range list {
			modules[m.ID] = m
		}
	}

	instructors := make(map[uuid.UUID]*model.User)
	if len(userIDs) > 0 {
		list, err := s.userRepo.GetByIDs(ctx, userIDs)
		if err != nil {
			return nil, nil, &TransportError{Op: "get instructors", Err: err}
		}
		for _, u := range list {
			instructors[u.ID] = u
		}
	}

	return modules, instructors, nil
}

// WeekView недельное представление: 7 дней Пн..Вс с французскими подписями
func (s *ScheduleService) WeekView(ctx context.Context, scheduleID uuid.UUID, ref time.Time) ([]calendar.CalendarDay, error) {
	slots, err := s.ListSlots(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	modules, _, err := s.lookups(ctx, slots)
	if err != nil {
		return nil, err
	}

	return calendar.CalendarWeek(ref, slots, modules), nil
}

// WeekBuckets сырое недельное представление (для рендера изображения)
func (s *ScheduleService) WeekBuckets(ctx context.Context, scheduleID uuid.UUID, ref time.Time) ([]calendar.DayBucket, error) {
	slots, err := s.ListSlots(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	return calendar.WeekBuckets(ref, slots), nil
}

// MonthView месячная сетка с ведущими/замыкающими днями соседних месяцев
func (s *ScheduleService) MonthView(ctx context.Context, scheduleID uuid.UUID, ref time.Time) ([]calendar.GridDay, error) {
	slots, err := s.ListSlots(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	return calendar.MonthGrid(ref, slots), nil
}

// HourCell часовая колонка дневного представления
type HourCell struct {
	Hour string              `json:"hour"`
	Slot *model.ScheduleSlot `json:"slot"`
}

// DayView дневное представление: часовые метки 08:00..19:00, в каждой
// не более одного слота
func (s *ScheduleService) DayView(ctx context.Context, scheduleID uuid.UUID, day time.Time) ([]HourCell, error) {
	slots, err := s.ListSlots(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	daySlots := calendar.DaySlots(day, slots)
	cells := make([]HourCell, 0, len(calendar.HourAnchors))
	for _, anchor := range calendar.HourAnchors {
		cells = append(cells, HourCell{
			Hour: anchor,
			Slot: calendar.SlotAtHour(daySlots, anchor),
		})
	}
	return cells, nil
}

// AgendaView хронологическое представление списка
type AgendaView struct {
	Past     []*model.ScheduleSlot `json:"past"`
	Today    []*model.ScheduleSlot `json:"today"`
	Upcoming []*model.ScheduleSlot `json:"upcoming"`
}

// recentPastLimit сколько прошедших слотов показывает список
const recentPastLimit = 10

// Agenda хронологическая разбивка: прошедшие (не более 10, свежие
// первыми), сегодняшние и предстоящие слоты
func (s *ScheduleService) Agenda(ctx context.Context, scheduleID uuid.UUID, today time.Time) (*AgendaView, error) {
	slots, err := s.ListSlots(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	past, current, upcoming := calendar.Partition(slots, today)
	return &AgendaView{
		Past:     calendar.RecentPast(past, recentPastLimit),
		Today:    current,
		Upcoming: upcoming,
	}, nil
}

// ListFormations каталог формаций
func (s *ScheduleService) ListFormations(ctx context.Context) ([]*model.Formation, error) {
	formations, err := s.formationRepo.List(ctx)
	if err != nil {
		return nil, &TransportError{Op: "list formations", Err: err}
	}
	return formations, nil
}

// ListModules модули формации
func (s *ScheduleService) ListModules(ctx context.Context, formationID uuid.UUID) ([]*model.FormationModule, error) {
	formation, err := s.formationRepo.GetByID(ctx, formationID)
	if err != nil {
		return nil, &TransportError{Op: "get formation", Err: err}
	}
	if formation == nil {
		return nil, &NotFoundError{Resource: "formation"}
	}

	modules, err := s.moduleRepo.ListByFormation(ctx, formationID)
	if err != nil {
		return nil, &TransportError{Op: "list modules", Err: err}
	}
	return modules, nil
}

// ListInstructors преподаватели для выпадающего списка формы
func (s *ScheduleService) ListInstructors(ctx context.Context) ([]*model.User, error) {
	instructors, err := s.userRepo.ListInstructors(ctx)
	if err != nil {
		return nil, &TransportError{Op: "list instructors", Err: err}
	}
	return instructors, nil
}
