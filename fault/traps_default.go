//go:build !unaligntrap

package fault

// DefaultTraps doesn't trap unaligned accesses, since a lot of code relies on
// the core handling them. Build with the unaligntrap tag to trap them too.
const DefaultTraps = TrapDivideByZero | ReportMemManage | ReportBus | ReportUsage
