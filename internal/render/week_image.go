package render

import (
	"bytes"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/espaceform/formation_portal/internal/calendar"
	"github.com/espaceform/formation_portal/internal/model"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	imageWidth       = 1400
	imageHeight      = 900
	headerHeight     = 100
	leftLabelsWidth  = 80
	dayPaddingX      = 8
	minSlotHeight    = 8.0
	slotBorderRadius = 6.0
	shadowOffset     = 3.0
	totalDaysInWeek  = 7
	hourPaddingTop   = 1
	hourPaddingBot   = 1
	defaultMinHour   = 8
	defaultMaxHour   = 19
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	todayBgColor   = color.NRGBA{255, 99, 71, 125}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{220, 220, 220, 255}

	slotDefaultColor = color.RGBA{158, 158, 158, 220}
	slotTextColor    = color.RGBA{20, 24, 28, 230}
	slotShadowColor  = color.RGBA{0, 0, 0, 20}
)

// hourRange диапазон часов для отображения
type hourRange struct {
	start int
	end   int
	total int
}

// WeekImage рендерит недельную сетку расписания в PNG.
// Источник данных - чистая недельная проекция; рендер не ходит в базу.
func WeekImage(ref time.Time, slots []*model.ScheduleSlot) ([]byte, error) {
	buckets := calendar.WeekBuckets(ref, slots)
	today := calendar.DayStart(time.Now())

	hours := calculateHourRange(slots)

	dc := createCanvas()
	dayWidth := (imageWidth - leftLabelsWidth) / totalDaysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, buckets)
	drawHourLabels(dc, hours, cellHeight)

	for dayIndex, bucket := range buckets {
		x := float64(leftLabelsWidth + dayIndex*dayWidth)
		y := float64(headerHeight)

		isToday := bucket.Date.Equal(today)

		drawDayBackground(dc, x, y, dayWidth, dayHeight, dayIndex, isToday)
		drawDayHeader(dc, bucket.Date, x, y, dayWidth)
		drawHourLines(dc, x, y, dayWidth, hours, cellHeight)

		for _, slot := range bucket.Slots {
			drawSlot(dc, slot, x, y, dayWidth, hours, cellHeight)
		}
	}

	return encodeImage(dc)
}

// calculateHourRange определяет диапазон часов по слотам недели
func calculateHourRange(slots []*model.ScheduleSlot) hourRange {
	minHour := 24
	maxHour := 0

	for _, slot := range slots {
		startH := parseHour(slot.StartTime)
		endH := parseHour(slot.EndTime)
		if endMinute(slot.EndTime) > 0 {
			endH++
		}
		if startH < minHour {
			minHour = startH
		}
		if endH > maxHour {
			maxHour = endH
		}
	}

	if minHour == 24 {
		minHour = defaultMinHour
		maxHour = defaultMaxHour
	}

	startHour := minHour - hourPaddingTop
	endHour := maxHour + hourPaddingBot
	if startHour < 0 {
		startHour = 0
	}
	if endHour > 23 {
		endHour = 23
	}

	return hourRange{
		start: startHour,
		end:   endHour,
		total: endHour - startHour + 1,
	}
}

func parseHour(hhmm string) int {
	if len(hhmm) < 2 {
		return 0
	}
	h, err := strconv.Atoi(hhmm[:2])
	if err != nil {
		return 0
	}
	return h
}

func endMinute(hhmm string) int {
	if len(hhmm) < 5 {
		return 0
	}
	m, err := strconv.Atoi(hhmm[3:5])
	if err != nil {
		return 0
	}
	return m
}

// hourFraction "10:30" -> 10.5
func hourFraction(hhmm string) float64 {
	return float64(parseHour(hhmm)) + float64(endMinute(hhmm))/60.0
}

// createCanvas создает новый контекст рисования с фоном
func createCanvas() *gg.Context {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(bgColor)
	dc.Clear()
	return dc
}

// drawHeader рисует заголовок с названием месяца по-французски
func drawHeader(dc *gg.Context, buckets []calendar.DayBucket) {
	startMonth := buckets[0].Date.Month()
	endMonth := buckets[len(buckets)-1].Date.Month()

	var title string
	if startMonth == endMonth {
		title = calendar.MonthName(startMonth)
	} else {
		title = calendar.MonthName(startMonth) + " - " + calendar.MonthName(endMonth)
	}

	dc.SetColor(textColor)
	w, h := dc.MeasureString(title)
	dc.DrawStringAnchored(title, float64(imageWidth)/2-w/2, float64(headerHeight)/4+h/2, 0, 0)
}

// drawHourLabels рисует колонку с часами слева
func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	dc.SetColor(hourLabelColor)

	for hIdx := 0; hIdx < hours.total; hIdx++ {
		actualHour := hours.start + hIdx
		y := float64(headerHeight) + float64(hIdx)*cellHeight
		dc.DrawStringAnchored(formatHourLabel(actualHour), float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

// drawDayBackground рисует фон дня
func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int, isToday bool) {
	if isToday {
		dc.SetColor(todayBgColor)
	} else if dayIndex%2 == 0 {
		dc.SetColor(evenDayColor)
	} else {
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

// drawDayHeader рисует день недели и дату
func drawDayHeader(dc *gg.Context, date time.Time, x, y float64, dayWidth int) {
	weekdayStr := calendar.WeekdayShort(date.Weekday())
	dateStr := date.Format("02/01")

	dc.SetColor(textColor)
	dc.DrawStringAnchored(dateStr, x+float64(dayWidth)/2, y-26, 0.5, 0)
	dc.DrawStringAnchored(weekdayStr, x+float64(dayWidth)/2, y-10, 0.5, 0)
}

// drawHourLines рисует горизонтальные линии часов
func drawHourLines(dc *gg.Context, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)

	for hIdx := 0; hIdx <= hours.total; hIdx++ {
		hy := y + float64(hIdx)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

// drawSlot рисует один слот в цвете, заданном в его данных
func drawSlot(dc *gg.Context, slot *model.ScheduleSlot, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	slotStartHour := hourFraction(slot.StartTime)
	slotEndHour := hourFraction(slot.EndTime)

	slotY := y + (slotStartHour-float64(hours.start))*cellHeight
	slotHeight := (slotEndHour - slotStartHour) * cellHeight
	if slotHeight < minSlotHeight {
		slotHeight = minSlotHeight
	}

	fillColor := parseHexColor(slot.Color)
	slotWidth := float64(dayWidth) - float64(dayPaddingX*2)

	// Тень
	dc.SetColor(slotShadowColor)
	dc.DrawRoundedRectangle(x+dayPaddingX+shadowOffset, slotY+2+shadowOffset, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Fill()

	// Основной слот
	dc.SetColor(fillColor)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), slotY+2, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Fill()

	// Рамка
	dc.SetColor(darkenColor(fillColor, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), slotY+2, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Stroke()

	// Текст времени
	dc.SetColor(slotTextColor)
	txtX := x + float64(dayPaddingX) + 8
	txtY := slotY + 8 + 10
	dc.DrawStringAnchored(slot.StartTime+"-"+slot.EndTime, txtX, txtY, 0, 0)

	// Подпись: зал либо начало заметки, если слот достаточно высокий
	additionalText := slot.Room
	if additionalText == "" {
		additionalText = slot.Notes
	}
	if additionalText != "" && slotHeight > 25 {
		maxLen := 20
		if len(additionalText) > maxLen {
			additionalText = additionalText[:maxLen-3] + "..."
		}
		dc.DrawStringAnchored(additionalText, txtX, txtY+16, 0, 0)
	}
}

// parseHexColor разбирает #RGB/#RRGGBB, серый по умолчанию
func parseHexColor(value string) color.RGBA {
	value = strings.TrimPrefix(value, "#")

	if len(value) == 3 {
		value = string([]byte{value[0], value[0], value[1], value[1], value[2], value[2]})
	}
	if len(value) != 6 {
		return slotDefaultColor
	}

	parsed, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return slotDefaultColor
	}

	return color.RGBA{
		R: uint8(parsed >> 16),
		G: uint8(parsed >> 8),
		B: uint8(parsed),
		A: 220,
	}
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// формат числа с двумя цифрами
func formatTwoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func formatHourLabel(h int) string {
	return formatTwoDigits(h) + ":00"
}
