package flags

// ClassFlags mirrors the engine's EClassFlags.
type ClassFlags uint32

const (
	ClassNone                     ClassFlags = 0
	ClassAbstract                 ClassFlags = 0x00000001
	ClassDefaultConfig            ClassFlags = 0x00000002
	ClassConfig                   ClassFlags = 0x00000004
	ClassTransient                ClassFlags = 0x00000008
	ClassParsed                   ClassFlags = 0x00000010
	ClassMatchedSerializers       ClassFlags = 0x00000020
	ClassProjectUserConfig        ClassFlags = 0x00000040
	ClassNative                   ClassFlags = 0x00000080
	ClassNoExport                 ClassFlags = 0x00000100
	ClassNotPlaceable             ClassFlags = 0x00000200
	ClassPerObjectConfig          ClassFlags = 0x00000400
	ClassReplicationDataIsSetUp   ClassFlags = 0x00000800
	ClassEditInlineNew            ClassFlags = 0x00001000
	ClassCollapseCategories       ClassFlags = 0x00002000
	ClassInterface                ClassFlags = 0x00004000
	ClassCustomConstructor        ClassFlags = 0x00008000
	ClassConst                    ClassFlags = 0x00010000
	ClassLayoutChanging           ClassFlags = 0x00020000
	ClassCompiledFromBlueprint    ClassFlags = 0x00040000
	ClassMinimalAPI               ClassFlags = 0x00080000
	ClassRequiredAPI              ClassFlags = 0x00100000
	ClassDefaultToInstanced       ClassFlags = 0x00200000
	ClassTokenStreamAssembled     ClassFlags = 0x00400000
	ClassHasInstancedReference    ClassFlags = 0x00800000
	ClassHidden                   ClassFlags = 0x01000000
	ClassDeprecated               ClassFlags = 0x02000000
	ClassHideDropDown             ClassFlags = 0x04000000
	ClassGlobalUserConfig         ClassFlags = 0x08000000
	ClassIntrinsic                ClassFlags = 0x10000000
	ClassConstructed              ClassFlags = 0x20000000
	ClassConfigDoNotCheckDefaults ClassFlags = 0x40000000
	ClassNewerVersionExists       ClassFlags = 0x80000000
)

// ClassLabels is the display order of class flags.
// ClassHasInstancedReference has no label.
var ClassLabels = []Label[ClassFlags]{
	{ClassAbstract, "Abstract"},
	{ClassDefaultConfig, "DefaultConfig"},
	{ClassConfig, "Config"},
	{ClassTransient, "Transient"},
	{ClassParsed, "Parsed"},
	{ClassMatchedSerializers, "MatchedSerializers"},
	{ClassProjectUserConfig, "ProjectUserConfig"},
	{ClassNative, "Native"},
	{ClassNoExport, "NoExport"},
	{ClassNotPlaceable, "NotPlaceable"},
	{ClassPerObjectConfig, "PerObjectConfig"},
	{ClassReplicationDataIsSetUp, "ReplicationDataIsSetUp"},
	{ClassEditInlineNew, "EditInlineNew"},
	{ClassCollapseCategories, "CollapseCategories"},
	{ClassInterface, "Interface"},
	{ClassCustomConstructor, "CustomConstructor"},
	{ClassConst, "Const"},
	{ClassLayoutChanging, "LayoutChanging"},
	{ClassCompiledFromBlueprint, "CompiledFromBlueprint"},
	{ClassMinimalAPI, "MinimalAPI"},
	{ClassRequiredAPI, "RequiredAPI"},
	{ClassDefaultToInstanced, "DefaultToInstanced"},
	{ClassTokenStreamAssembled, "TokenStreamAssembled"},
	{ClassHidden, "Hidden"},
	{ClassDeprecated, "Deprecated"},
	{ClassHideDropDown, "HideDropDown"},
	{ClassGlobalUserConfig, "GlobalUserConfig"},
	{ClassIntrinsic, "Intrinsic"},
	{ClassConstructed, "Constructed"},
	{ClassConfigDoNotCheckDefaults, "ConfigDoNotCheckDefaults"},
	{ClassNewerVersionExists, "NewerVersionExists"},
}

// String returns the " | " joined labels of the set bits.
func (f ClassFlags) String() string {
	return format(f, ClassLabels)
}

// Has reports whether any bit of mask is set.
func (f ClassFlags) Has(mask ClassFlags) bool {
	return f&mask != 0
}
