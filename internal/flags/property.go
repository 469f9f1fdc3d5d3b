package flags

// PropertyFlags mirrors the engine's 64-bit EPropertyFlags.
type PropertyFlags uint64

const (
	PropNone                           PropertyFlags = 0
	PropEdit                           PropertyFlags = 0x0000000000000001
	PropConstParm                      PropertyFlags = 0x0000000000000002
	PropBlueprintVisible               PropertyFlags = 0x0000000000000004
	PropExportObject                   PropertyFlags = 0x0000000000000008
	PropBlueprintReadOnly              PropertyFlags = 0x0000000000000010
	PropNet                            PropertyFlags = 0x0000000000000020
	PropEditFixedSize                  PropertyFlags = 0x0000000000000040
	PropParm                           PropertyFlags = 0x0000000000000080
	PropOutParm                        PropertyFlags = 0x0000000000000100
	PropZeroConstructor                PropertyFlags = 0x0000000000000200
	PropReturnParm                     PropertyFlags = 0x0000000000000400
	PropDisableEditOnTemplate          PropertyFlags = 0x0000000000000800
	PropTransient                      PropertyFlags = 0x0000000000002000
	PropConfig                         PropertyFlags = 0x0000000000004000
	PropDisableEditOnInstance          PropertyFlags = 0x0000000000010000
	PropEditConst                      PropertyFlags = 0x0000000000020000
	PropGlobalConfig                   PropertyFlags = 0x0000000000040000
	PropInstancedReference             PropertyFlags = 0x0000000000080000
	PropDuplicateTransient             PropertyFlags = 0x0000000000200000
	PropSaveGame                       PropertyFlags = 0x0000000001000000
	PropNoClear                        PropertyFlags = 0x0000000002000000
	PropReferenceParm                  PropertyFlags = 0x0000000008000000
	PropBlueprintAssignable            PropertyFlags = 0x0000000010000000
	PropDeprecated                     PropertyFlags = 0x0000000020000000
	PropIsPlainOldData                 PropertyFlags = 0x0000000040000000
	PropRepSkip                        PropertyFlags = 0x0000000080000000
	PropRepNotify                      PropertyFlags = 0x0000000100000000
	PropInterp                         PropertyFlags = 0x0000000200000000
	PropNonTransactional               PropertyFlags = 0x0000000400000000
	PropEditorOnly                     PropertyFlags = 0x0000000800000000
	PropNoDestructor                   PropertyFlags = 0x0000001000000000
	PropAutoWeak                       PropertyFlags = 0x0000004000000000
	PropContainsInstancedReference     PropertyFlags = 0x0000008000000000
	PropAssetRegistrySearchable        PropertyFlags = 0x0000010000000000
	PropSimpleDisplay                  PropertyFlags = 0x0000020000000000
	PropAdvancedDisplay                PropertyFlags = 0x0000040000000000
	PropProtected                      PropertyFlags = 0x0000080000000000
	PropBlueprintCallable              PropertyFlags = 0x0000100000000000
	PropBlueprintAuthorityOnly         PropertyFlags = 0x0000200000000000
	PropTextExportTransient            PropertyFlags = 0x0000400000000000
	PropNonPIEDuplicateTransient       PropertyFlags = 0x0000800000000000
	PropExposeOnSpawn                  PropertyFlags = 0x0001000000000000
	PropPersistentInstance             PropertyFlags = 0x0002000000000000
	PropUObjectWrapper                 PropertyFlags = 0x0004000000000000
	PropHasGetValueTypeHash            PropertyFlags = 0x0008000000000000
	PropNativeAccessSpecifierPublic    PropertyFlags = 0x0010000000000000
	PropNativeAccessSpecifierProtected PropertyFlags = 0x0020000000000000
	PropNativeAccessSpecifierPrivate   PropertyFlags = 0x0040000000000000
	PropSkipSerialization              PropertyFlags = 0x0080000000000000
)

var PropertyLabels = []Label[PropertyFlags]{
	{PropEdit, "Edit"},
	{PropConstParm, "ConstParm"},
	{PropBlueprintVisible, "BlueprintVisible"},
	{PropExportObject, "ExportObject"},
	{PropBlueprintReadOnly, "BlueprintReadOnly"},
	{PropNet, "Net"},
	{PropEditFixedSize, "EditFixedSize"},
	{PropParm, "Parm"},
	{PropOutParm, "OutParm"},
	{PropZeroConstructor, "ZeroConstructor"},
	{PropReturnParm, "ReturnParm"},
	{PropDisableEditOnTemplate, "DisableEditOnTemplate"},
	{PropTransient, "Transient"},
	{PropConfig, "Config"},
	{PropDisableEditOnInstance, "DisableEditOnInstance"},
	{PropEditConst, "EditConst"},
	{PropGlobalConfig, "GlobalConfig"},
	{PropInstancedReference, "InstancedReference"},
	{PropDuplicateTransient, "DuplicateTransient"},
	{PropSaveGame, "SaveGame"},
	{PropNoClear, "NoClear"},
	{PropReferenceParm, "ReferenceParm"},
	{PropBlueprintAssignable, "BlueprintAssignable"},
	{PropDeprecated, "Deprecated"},
	{PropIsPlainOldData, "IsPlainOldData"},
	{PropRepSkip, "RepSkip"},
	{PropRepNotify, "RepNotify"},
	{PropInterp, "Interp"},
	{PropNonTransactional, "NonTransactional"},
	{PropEditorOnly, "EditorOnly"},
	{PropNoDestructor, "NoDestructor"},
	{PropAutoWeak, "AutoWeak"},
	{PropContainsInstancedReference, "ContainsInstancedReference"},
	{PropAssetRegistrySearchable, "AssetRegistrySearchable"},
	{PropSimpleDisplay, "SimpleDisplay"},
	{PropAdvancedDisplay, "AdvancedDisplay"},
	{PropProtected, "Protected"},
	{PropBlueprintCallable, "BlueprintCallable"},
	{PropBlueprintAuthorityOnly, "BlueprintAuthorityOnly"},
	{PropTextExportTransient, "TextExportTransient"},
	{PropNonPIEDuplicateTransient, "NonPIEDuplicateTransient"},
	{PropExposeOnSpawn, "ExposeOnSpawn"},
	{PropPersistentInstance, "PersistentInstance"},
	{PropUObjectWrapper, "UObjectWrapper"},
	{PropHasGetValueTypeHash, "HasGetValueTypeHash"},
	{PropNativeAccessSpecifierPublic, "NativeAccessSpecifierPublic"},
	{PropNativeAccessSpecifierProtected, "NativeAccessSpecifierProtected"},
	{PropNativeAccessSpecifierPrivate, "NativeAccessSpecifierPrivate"},
	{PropSkipSerialization, "SkipSerialization"},
}

func (f PropertyFlags) String() string {
	return format(f, PropertyLabels)
}

// Has reports whether any bit of mask is set.
func (f PropertyFlags) Has(mask PropertyFlags) bool {
	return f&mask != 0
}
