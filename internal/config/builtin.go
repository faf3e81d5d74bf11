package config

import "github.com/five82/anchorpatch/internal/patch"

const (
	appModeUnion    = "'calendar' | 'timetable' | 'payment' | 'gantt' | 'consultation' | 'attendance'"
	priorityUnion   = "'calendar' | 'timetable' | 'attendance' | 'payment' | 'gantt' | 'consultation'"
	priorityEntries = "'calendar', 'timetable', 'attendance', 'payment', 'gantt', 'consultation'"
)

// BuiltinRules returns the rule table used when no rule file is configured.
// It registers a "students" tab in App.tsx: the import, the app mode union,
// the tab priority list, the preferred tab cast, the navigation button and
// the view branch.
func BuiltinRules() []patch.Rule {
	return []patch.Rule{
		{
			Name:    "students-import",
			Trigger: patch.Trigger{Text: "import ConsultationManager"},
			Action:  patch.ActionInsertAfter,
			Payload: []string{
				"import StudentManagementTab from './components/StudentManagement/StudentManagementTab';",
			},
		},
		{
			Name: "students-app-mode",
			Trigger: patch.Trigger{
				Text: "const [appMode, setAppMode] = useState<" + appModeUnion + " | null>(null);",
			},
			Action: patch.ActionReplaceLine,
			Payload: []string{
				"  const [appMode, setAppMode] = useState<" + appModeUnion + " | 'students' | null>(null);",
			},
		},
		{
			Name: "students-priority",
			Trigger: patch.Trigger{
				Text: "const priority: (" + priorityUnion + ")[] = [" + priorityEntries + "];",
			},
			Action: patch.ActionReplaceLine,
			Payload: []string{
				"    const priority: (" + priorityUnion + " | 'students')[] = [" + priorityEntries + ", 'students'];",
			},
		},
		{
			Name:    "students-preferred-tab",
			Trigger: patch.Trigger{Text: "setAppMode(preferredTab as " + appModeUnion + ");"},
			Action:  patch.ActionReplaceLine,
			Payload: []string{
				"        setAppMode(preferredTab as " + appModeUnion + " | 'students');",
			},
		},
		{
			Name:    "students-nav-button",
			Trigger: patch.Trigger{Text: "📝 상담 관리"},
			Action:  patch.ActionSkipThenInsert,
			Skip:    3,
			Payload: []string{
				"              {/* Student Management */}",
				"              {canAccessTab('students' as AppTab) && (",
				"                <button",
				"                  onClick={() => setAppMode('students')}",
				"                  className={`px-3 py-1.5 rounded-md text-xs font-bold transition-all flex items-center gap-1.5 ${",
				"                    appMode === 'students'",
				"                      ? 'bg-[#fdb813] text-[#081429] shadow-sm'",
				"                      : 'text-gray-400 hover:text-white hover:bg-white/5'",
				"                  }`}",
				"                >",
				"                  👥 학생 관리",
				"                </button>",
				"              )}",
			},
		},
		{
			Name:    "students-view",
			Trigger: patch.Trigger{Text: ") : appMode === 'attendance' ?"},
			Action:  patch.ActionSkipThenInsert,
			Skip:    4,
			Payload: []string{
				"        ) : appMode === 'students' ? (",
				"          /* Student Management View */",
				"          <div className=\"w-full flex-1 overflow-hidden\">",
				"            <StudentManagementTab />",
				"          </div>",
			},
		},
	}
}
