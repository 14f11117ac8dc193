//go:build unaligntrap

package fault

const DefaultTraps = TrapDivideByZero | TrapUnaligned | ReportMemManage | ReportBus | ReportUsage
