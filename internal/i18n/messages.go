package i18n

import "golang.org/x/text/language"

var messages = map[language.Tag]map[string]string{
	language.English: {
		"app.title":         "Skey editor",
		"panel.sheet":       "Sheet",
		"panel.preview":     "Isometric preview",
		"panel.catalog":     "Symbols",
		"panel.metadata":    "Symbol properties",
		"panel.command":     "Command",
		"panel.help":        "Keys",
		"status.tool":       "Tool: %s",
		"status.modified":   "modified",
		"status.new":        "new symbol",
		"status.saved":      "Saved %s",
		"status.loaded":     "Loaded %s (%d primitives)",
		"status.skipped":    "%d geometry entries skipped",
		"status.exported":   "Exported to %s",
		"status.copied":     "%d geometry strings copied",
		"status.pasted":     "%d primitives pasted",
		"status.none":       "Nothing selected",
		"status.undo":       "Undone",
		"status.redo":       "Redone",
		"status.nothing":    "Nothing to do",
		"status.deleted":    "Deleted %d primitives",
		"status.imported":   "Imported %d symbols, %d errors",
		"cmd.moved":         "Moved %d primitives",
		"cmd.rotated":       "Rotated %d primitives by %v°",
		"cmd.cleared":       "Selection cleared",
		"error.empty":       "Symbol name must not be empty",
		"error.generic":     "Error: %v",
		"error.not_found":   "Symbol %s not found",
		"field.name":        "Name",
		"field.group":       "Group",
		"field.subgroup":    "Subgroup",
		"field.desc":        "Description",
		"field.spindle":     "Spindle",
		"field.conn":        "Connection",
		"confirm.quit":      "Unsaved changes. Quit anyway? (y/n)",
		"confirm.delete":    "Delete symbol %s? (y/n)",
		"field.orientation": "Orientation",
		"field.flow":        "Flow arrow",
		"field.dims":        "Dimensioned",
		"field.tracing":     "Tracing",
		"field.insulation":  "Insulation",
		"confirm.open":      "Unsaved changes. Open %s anyway? (y/n)",
		"confirm.new":       "Unsaved changes. Start a new symbol? (y/n)",
		"confirm.export":    "Export as: p sheet png, i isometric png, s svg, a ascii, t text (esc cancels)",
		"status.connection": "Connection: %s (%s)",
		"help.keys": "0 select  1-9 shapes  g polygons  a arrive  v leave  t tee  s spindle  M move  space click  " +
			"x delete  ctrl+z/ctrl+y undo/redo  : command  ctrl+s save  o open  m properties  e export  ? help  q quit",
	},
	language.Russian: {
		"app.title":         "Редактор Skey",
		"panel.sheet":       "Лист",
		"panel.preview":     "Изометрический вид",
		"panel.catalog":     "Символы",
		"panel.metadata":    "Свойства символа",
		"panel.command":     "Команда",
		"panel.help":        "Клавиши",
		"status.tool":       "Инструмент: %s",
		"status.modified":   "изменён",
		"status.new":        "новый символ",
		"status.saved":      "Сохранено: %s",
		"status.loaded":     "Загружено: %s (примитивов: %d)",
		"status.skipped":    "Пропущено записей геометрии: %d",
		"status.exported":   "Экспортировано в %s",
		"status.copied":     "Скопировано строк геометрии: %d",
		"status.pasted":     "Вставлено примитивов: %d",
		"status.none":       "Ничего не выбрано",
		"status.undo":       "Отменено",
		"status.redo":       "Повторено",
		"status.nothing":    "Нечего делать",
		"status.deleted":    "Удалено примитивов: %d",
		"status.imported":   "Импортировано символов: %d, ошибок: %d",
		"cmd.moved":         "Перемещено элементов: %d",
		"cmd.rotated":       "Повёрнуто элементов: %d на %v°",
		"cmd.cleared":       "Выделение снято",
		"error.empty":       "Имя символа не может быть пустым",
		"error.generic":     "Ошибка: %v",
		"error.not_found":   "Символ %s не найден",
		"field.name":        "Имя",
		"field.group":       "Группа",
		"field.subgroup":    "Подгруппа",
		"field.desc":        "Описание",
		"field.spindle":     "Шпиндель",
		"field.conn":        "Соединение",
		"confirm.quit":      "Есть несохранённые изменения. Выйти? (y/n)",
		"confirm.delete":    "Удалить символ %s? (y/n)",
		"field.orientation": "Ориентация",
		"field.flow":        "Стрелка потока",
		"field.dims":        "Размеры",
		"field.tracing":     "Обогрев",
		"field.insulation":  "Изоляция",
		"confirm.open":      "Есть несохранённые изменения. Открыть %s? (y/n)",
		"confirm.new":       "Есть несохранённые изменения. Начать новый символ? (y/n)",
		"confirm.export":    "Экспорт: p лист png, i изометрия png, s svg, a ascii, t текст (esc отмена)",
		"status.connection": "Соединение: %s (%s)",
	},
}
