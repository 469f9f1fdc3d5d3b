package flags

// FunctionFlags mirrors the engine's EFunctionFlags.
type FunctionFlags uint32

const (
	FuncNone                   FunctionFlags = 0
	FuncFinal                  FunctionFlags = 0x00000001
	FuncRequiredAPI            FunctionFlags = 0x00000002
	FuncBlueprintAuthorityOnly FunctionFlags = 0x00000004
	FuncBlueprintCosmetic      FunctionFlags = 0x00000008
	FuncNet                    FunctionFlags = 0x00000040
	FuncNetReliable            FunctionFlags = 0x00000080
	FuncNetRequest             FunctionFlags = 0x00000100
	FuncExec                   FunctionFlags = 0x00000200
	FuncNative                 FunctionFlags = 0x00000400
	FuncEvent                  FunctionFlags = 0x00000800
	FuncNetResponse            FunctionFlags = 0x00001000
	FuncStatic                 FunctionFlags = 0x00002000
	FuncNetMulticast           FunctionFlags = 0x00004000
	FuncUbergraphFunction      FunctionFlags = 0x00008000
	FuncMulticastDelegate      FunctionFlags = 0x00010000
	FuncPublic                 FunctionFlags = 0x00020000
	FuncPrivate                FunctionFlags = 0x00040000
	FuncProtected              FunctionFlags = 0x00080000
	FuncDelegate               FunctionFlags = 0x00100000
	FuncNetServer              FunctionFlags = 0x00200000
	FuncHasOutParms            FunctionFlags = 0x00400000
	FuncHasDefaults            FunctionFlags = 0x00800000
	FuncNetClient              FunctionFlags = 0x01000000
	FuncDLLImport              FunctionFlags = 0x02000000
	FuncBlueprintCallable      FunctionFlags = 0x04000000
	FuncBlueprintEvent         FunctionFlags = 0x08000000
	FuncBlueprintPure          FunctionFlags = 0x10000000
	FuncEditorOnly             FunctionFlags = 0x20000000
	FuncConst                  FunctionFlags = 0x40000000
	FuncNetValidate            FunctionFlags = 0x80000000
)

var FunctionLabels = []Label[FunctionFlags]{
	{FuncFinal, "Final"},
	{FuncRequiredAPI, "RequiredAPI"},
	{FuncBlueprintAuthorityOnly, "BlueprintAuthorityOnly"},
	{FuncBlueprintCosmetic, "BlueprintCosmetic"},
	{FuncNet, "Net"},
	{FuncNetReliable, "NetReliable"},
	{FuncNetRequest, "NetRequest"},
	{FuncExec, "Exec"},
	{FuncNative, "Native"},
	{FuncEvent, "Event"},
	{FuncNetResponse, "NetResponse"},
	{FuncStatic, "Static"},
	{FuncNetMulticast, "NetMulticast"},
	{FuncUbergraphFunction, "UbergraphFunction"},
	{FuncMulticastDelegate, "MulticastDelegate"},
	{FuncPublic, "Public"},
	{FuncPrivate, "Private"},
	{FuncProtected, "Protected"},
	{FuncDelegate, "Delegate"},
	{FuncNetServer, "NetServer"},
	{FuncHasOutParms, "HasOutParms"},
	{FuncHasDefaults, "HasDefaults"},
	{FuncNetClient, "NetClient"},
	{FuncDLLImport, "DLLImport"},
	{FuncBlueprintCallable, "BlueprintCallable"},
	{FuncBlueprintEvent, "BlueprintEvent"},
	{FuncBlueprintPure, "BlueprintPure"},
	{FuncEditorOnly, "EditorOnly"},
	{FuncConst, "Const"},
	{FuncNetValidate, "NetValidate"},
}

func (f FunctionFlags) String() string {
	return format(f, FunctionLabels)
}

// Has reports whether any bit of mask is set.
func (f FunctionFlags) Has(mask FunctionFlags) bool {
	return f&mask != 0
}
